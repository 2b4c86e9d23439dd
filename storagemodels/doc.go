/*
Package storagemodels defines the data structures shared by kindstore backends.

Key Types:

StoredRecord:
The envelope written by keyspace backends such as badgerdb. The record itself
is kept as DynamoDB attribute values so that any struct the attributevalue
codec understands can be stored without a hand-written schema:

	type StoredRecord struct {
	    Kind     string
	    ID       string
	    StoredAt strfmt.DateTime
	    Item     map[string]types.AttributeValue
	}

Snapshot:
A copy of every record in a store grouped by kind, in kind definition order.
It is what the kindstore CLI prints:

	kinds:
	  - kind: song
	    records:
	      - id: song-123
	        singer: The Flaming Lips
*/
package storagemodels
