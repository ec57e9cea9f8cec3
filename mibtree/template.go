package mibtree

// DefaultTemplate prints one block per node of the subtree: the label
// (module-qualified for the root, "(oid)" for unnamed arcs), then oid, type,
// file, descr, enums, parent, peers, next, next_peer and children.
const DefaultTemplate = `{{range .Nodes -}}
{{if not .Label}}({{.OID}}){{else if eq .ID $.Root.ID}}{{.QualifiedLabel}}{{else}}{{.Label}}{{end}}
  - oid:       {{.OID}}
  - type:      {{.Type}}
  - file:      {{.Module.File}}
  - descr:     {{.Description}}
  - enums:     {{enumRefs .Enums | join ", "}}
  - parent:    {{with .Parent}}{{.OID}}{{end}}
  - peers:     {{nodeRefs .Peers | join ", "}}
  - next:      {{with .Next}}{{.OID}}{{end}}
  - next_peer: {{with .NextPeer}}{{.OID}}{{end}}
  - children:  {{nodeRefs .Children | join ", "}}
{{end -}}
`

// DefaultTemplateName is the name reported in errors for DefaultTemplate.
const DefaultTemplateName = "default"
