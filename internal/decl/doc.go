// Package decl defines the declaration records a host registers with the
// generator.
//
// A declaration is a method-like member carrying zero or more markers. Hosts
// resolve the symbol-level facts (containing type, modifiers, parameter
// types) up front and attach them as a Symbol; a declaration whose
// resolution failed carries a nil Symbol. Nothing in this package inspects
// source code.
//
// Declarations round-trip through YAML, TOML and msgpack:
//
//	declarations:
//	  - name: AddFragmentProfile
//	    location: {file: Extensions.cs, line: 12, column: 31}
//	    markers:
//	      - kind: extension-point
//	    symbol:
//	      containing_type: {namespace: App, name: Extensions}
//	      accessibility: public
//	      static: true
//	      partial_definition: true
//	      extension: true
//	      returns_void: true
//	      parameters:
//	        - {name: expression, type: AutoMapper.IMapperConfigurationExpression}
//	        - {name: provider, type: System.IServiceProvider}
package decl
