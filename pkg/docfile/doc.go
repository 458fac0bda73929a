// Package docfile reads and writes form documents as YAML or JSON files. The
// document model never serialises itself; this package owns the on-disk
// shape:
//
//	id: feedback
//	title: Customer Feedback
//	questions:
//	  - id: q1
//	    type: text
//	    label: Name
//	    required: true
//	    options: []
package docfile
