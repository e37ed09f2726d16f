package resource

import (
	"path"
	"strings"
)

type Type uint8

const (
	TypeGIF Type = iota
	TypePNG
)

func (t Type) String() string {
	switch t {
	case TypeGIF:
		return "Type(GIF)"
	case TypePNG:
		return "Type(PNG)"
	}
	return "Type(UNKNOWN)"
}

// Ext is the file extension images of this type are stored under.
func (t Type) Ext() string {
	switch t {
	case TypeGIF:
		return ".gif"
	case TypePNG:
		return ".png"
	}
	return ""
}

// TypeOf picks the image type from a file name's extension.
func TypeOf(name string) (Type, bool) {
	switch strings.ToLower(path.Ext(name)) {
	case ".gif":
		return TypeGIF, true
	case ".png":
		return TypePNG, true
	}
	return 0, false
}

// typeOfFormat maps a sniffed format name to a Type.
func typeOfFormat(format string) (Type, bool) {
	switch format {
	case "gif":
		return TypeGIF, true
	case "png":
		return TypePNG, true
	}
	return 0, false
}
