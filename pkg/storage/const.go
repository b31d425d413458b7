package storage

const (
	WAYS_FILE_NAME    = "ways.dat"
	RAWRELS_FILE_NAME = "rawrels.dat"
	ROUTE_FILE_NAME   = "route.dat"
	WAY_INDEX_NAME    = "way.idx"
)
