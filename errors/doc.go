/*
Package errors provides semantic error types for kindstore.

The package defines the failure scenarios of the registry and the store with
specific types that can be checked using the standard errors.Is() function or
the provided helper functions.

Common Errors:

	var (
	    ErrNotFound      = errors.New("entity not found")
	    ErrAlreadyExists = errors.New("entity already exists")
	    ErrInvalidInput  = errors.New("invalid input")
	    ErrUnknownKind   = errors.New("unknown entity kind")
	    ErrInvalidKind   = errors.New("invalid kind definition")
	)

Usage:

	song, err := songs.Get(ctx, "song-123")
	if err != nil {
	    if errors.IsNotFound(err) {
	        nf, _ := errors.AsNotFound(err)
	        log.Printf("no %s stored under %s", nf.Kind, nf.ID)
	    }
	    return err
	}

NotFoundError always carries the kind name and the offending id.
*/
package errors
