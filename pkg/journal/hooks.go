package journal

import "tableflip.dev/trail/pkg/item"

// Observer watches journal lifecycle points. Observers run synchronously
// in registration order and must not mutate the journal.
type Observer interface {
	// PostRead runs after a file has been parsed into a journal.
	PostRead(j *Journal)
	// PreWrite runs just before the journal is written to disk.
	PreWrite(j *Journal)
	// PostEntryAdded runs after a new item has been attached.
	PostEntryAdded(j *Journal, it *item.Item)
	// PostEntryUpdated runs after an item changed in place.
	PostEntryUpdated(j *Journal, it *item.Item)
}

// NopObserver implements Observer with no behavior, for embedding when
// only some notifications matter.
type NopObserver struct{}

func (NopObserver) PostRead(*Journal)                     {}
func (NopObserver) PreWrite(*Journal)                     {}
func (NopObserver) PostEntryAdded(*Journal, *item.Item)   {}
func (NopObserver) PostEntryUpdated(*Journal, *item.Item) {}

// AddObserver registers an observer.
func (j *Journal) AddObserver(o Observer) {
	j.observers = append(j.observers, o)
}

func (j *Journal) firePostRead() {
	for _, o := range j.observers {
		o.PostRead(j)
	}
}

func (j *Journal) firePreWrite() {
	for _, o := range j.observers {
		o.PreWrite(j)
	}
}

func (j *Journal) firePostEntryAdded(it *item.Item) {
	for _, o := range j.observers {
		o.PostEntryAdded(j, it)
	}
}

func (j *Journal) firePostEntryUpdated(it *item.Item) {
	for _, o := range j.observers {
		o.PostEntryUpdated(j, it)
	}
}
