// Package manifest loads and writes declaration manifests: the explicit
// registration lists a host hands to the generator.
//
// A manifest has the following structure (YAML shown; TOML and msgpack use
// the same field names):
//
//	version: "1"
//	declarations:
//	  - name: ConfigureMapping
//	    location: {file: Controller.cs, line: 20, column: 24}
//	    markers:
//	      - kind: fragment
//	        profile: Orders
//	    symbol:
//	      containing_type: {namespace: App, name: Controller}
//	      accessibility: public
//	      static: true
//	      returns_void: true
//	      parameters:
//	        - {name: config, type: AutoMapper.IProfileExpression}
//
// Omitted shapes default to "method"; an omitted version defaults to "1".
// A declaration without a symbol block is one the host could not resolve.
package manifest
