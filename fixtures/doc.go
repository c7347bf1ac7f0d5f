// Package fixtures declares factori factories as YAML data.
//
// A fixture document lists factories by name. Each factory may hold a default block,
// a transient block and named mixins:
//
//	factories:
//	  vehicle:
//	    default:
//	      NumberWheels: 4
//	      Electric: false
//	    transient:
//	      DoubleWheels: false
//	    mixins:
//	      bike:
//	        NumberWheels: 2
//
// YAML cannot name Go types, so each entry is bound to its type at registration:
//
//	doc, err := fixtures.LoadFile("testdata/factories.yaml")
//	err = fixtures.Register[Vehicle](doc, "vehicle")
//
// Define returns the factori.Definer instead, so Go code can add a builder or lazy
// values before registering.
package fixtures
