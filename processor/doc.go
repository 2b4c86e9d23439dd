/*
Package processor generates typed registry code from a kind map declaration.

The kind map is a YAML file listing every kind with its fields. The id field is
implicit and always a string:

	kinds:
	  - name: movie
	    fields:
	      - name: director
	        type: string
	  - name: person
	    plural: people
	    keyPattern: "PERSON#{ID}"
	    fields:
	      - name: age
	        type: int

Supported field types are string, int, bool and float.

Generated Code:
For every kind the processor emits the record struct with a GetID method and
registers it in a package-level registry.KindMap:

	var Kinds = registry.NewKindMap()

	var (
	    MovieKind = registry.MustDefine[Movie](Kinds, "movie")
	)

A DataStore type wraps a kindstore.Store (NewDataStore creates one, WrapStore
adopts an existing store) and exposes four methods per kind:
AddMovie, GetMovie, GetAllMovies and ClearMovies. Adding a kind to the YAML
adds its methods on the next go generate run.
*/
package processor
