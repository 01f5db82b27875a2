package openaddr

/*
	This hash table uses open addressing: every slot holds at most one entry and a key
	that collides is placed further along a probe sequence starting at hash(key).

	Two probe sequences are supported:
	----------------------------------
	1) Quadratic (default). Step k adds the k-th odd number to the index, so the offsets
	   from the home slot are 1, 4, 9, 16, ... (k squared). With a prime capacity the first
	   (capacity+1)/2 positions are all distinct.
	2) Linear. Step k adds one, wrapping to zero at the end of the table. Coming back to
	   the home slot is a full cycle and stops the probe.

	Deletion:
	---------
	Emptying a slot would cut the probe sequence of every key that was placed past it,
	so a removed entry leaves a tombstone behind. Lookups walk over tombstones, inserts
	reuse the first one they pass once they know the key is not further along, and a
	resize drops them all. Tombstones count towards the max load so they can never fill
	the table.
*/
