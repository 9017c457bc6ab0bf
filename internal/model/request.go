package model

import "strings"

// RequestKind classifies an import request by how it is resolved.
type RequestKind int

const (
	// RelativeRequest is resolved against the importing file's directory
	// ("./util", "../lib/a").
	RelativeRequest RequestKind = iota
	// AbsoluteRequest is resolved against the build root ("/src/a").
	AbsoluteRequest
	// ModuleRequest names a package looked up through modules directories
	// ("react", "@scope/pkg/entry").
	ModuleRequest
)

// Request is a parsed import specifier.
type Request struct {
	raw  string
	kind RequestKind
}

// ParseRequest classifies a raw import specifier.
func ParseRequest(raw string) Request {
	kind := ModuleRequest
	switch {
	case strings.HasPrefix(raw, "./") || strings.HasPrefix(raw, "../") || raw == "." || raw == "..":
		kind = RelativeRequest
	case strings.HasPrefix(raw, "/"):
		kind = AbsoluteRequest
	}
	return Request{raw: raw, kind: kind}
}

// Raw returns the specifier as written in the source.
func (r Request) Raw() string {
	return r.raw
}

// Kind returns how the request is resolved.
func (r Request) Kind() RequestKind {
	return r.kind
}

func (r Request) String() string {
	return r.raw
}
