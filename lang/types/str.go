package types

// Str is the type of quoted string literals, e.g. 'foo'.
type Str string

var _ Value = Str("")

func (s Str) String() string { return string(s) }
func (s Str) Type() string   { return "str" }
func (s Str) Truth() Bool    { return len(s) > 0 }
