package scratch

import "strings"

// MnemonicMarker precedes the letter used as a keyboard accelerator in a display name.
const MnemonicMarker = "&"

// Scratch identifies one file-backed text artifact.
type Scratch struct {
	DisplayName string `json:"display_name"`
	Name        string `json:"name"`
	Extension   string `json:"extension"`
}

// Parse builds a Scratch from a raw display name or a bare file name.
func Parse(raw string) Scratch {
	name, extension := raw, ""
	if index := strings.LastIndex(raw, "."); index != -1 {
		name, extension = raw[:index], raw[index+1:]
	}
	return Scratch{
		DisplayName: raw,
		Name:        stripMnemonics(name),
		Extension:   stripMnemonics(extension),
	}
}

// FileName is the join key between a scratch and its file on disk.
func (s Scratch) FileName() string {
	return s.Name + "." + s.Extension
}

// Equal reports whether both scratches have the same display name.
func (s Scratch) Equal(other Scratch) bool {
	return s.DisplayName == other.DisplayName
}

func (s Scratch) String() string {
	return "{displayName='" + s.DisplayName + "'}"
}

func stripMnemonics(value string) string {
	return strings.ReplaceAll(value, MnemonicMarker, "")
}
