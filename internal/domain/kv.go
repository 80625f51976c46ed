package domain

// Entry is a single string key/value pair of the persistent store.
type Entry struct {
	Key   string
	Value string
}
