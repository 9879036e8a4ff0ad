package finalize

type cgoData struct {
	Package  string
	CXXFlags []string
	LDFlags  []string
}

const cgoTemplate = `// Code generated by ortools-build. DO NOT EDIT.

package {{.Package}}

/*
#cgo CXXFLAGS:{{range .CXXFlags}} {{.}}{{end}}
#cgo LDFLAGS:{{range .LDFlags}} {{.}}{{end}}
*/
import "C"
`
