/*
Package mongodataset loads example tables from MongoDB collections and
writes them there. Each example is a document with a string field per
feature, named after it, and a string field for the label.
*/
package mongodataset

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

// DefaultCollection is the name of the collection examples are kept on
// unless another is given.
const DefaultCollection = "examples"

/*
Store gives access to the examples on a collection of the default
database of a MongoDB session.
*/
type Store struct {
	session    *mgo.Session
	collection string
}

/*
Dial takes a context and a MongoDB URL and returns a session on the
database it points to. The context deadline, if any, bounds the time
spent connecting.
*/
func Dial(ctx context.Context, url string) (*mgo.Session, error) {
	timeout := 10 * time.Second
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	session, err := mgo.DialWithTimeout(url, timeout)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %v", err)
	}
	return session, nil
}

// New takes a MongoDB session and a collection name and returns a Store
// on that collection. An empty name is replaced by DefaultCollection.
func New(session *mgo.Session, collection string) *Store {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Store{session: session, collection: collection}
}

/*
Load takes a context, a domain and the name of the label field and returns
the examples in the collection, read in insertion order. Documents missing
a field or holding values outside the domain produce an error.
*/
func (s *Store) Load(ctx context.Context, d *feature.Domain, label string) (*dataset.Table, error) {
	if err := checkFieldNames(d, label); err != nil {
		return nil, err
	}
	session := s.session.Copy()
	defer session.Close()
	iter := session.DB("").C(s.collection).Find(nil).Sort("_id").Iter()
	t := dataset.New()
	var doc bson.M
	for n := 1; iter.Next(&doc); n++ {
		if err := ctx.Err(); err != nil {
			iter.Close()
			return nil, err
		}
		record := make([]string, d.Width())
		for _, f := range d.Features() {
			v, err := stringField(doc, f.Name())
			if err != nil {
				iter.Close()
				return nil, fmt.Errorf("document %d: %v", n, err)
			}
			record[f.Column()] = v
		}
		l, err := stringField(doc, label)
		if err != nil {
			iter.Close()
			return nil, fmt.Errorf("document %d: %v", n, err)
		}
		if err = d.Validate(record); err != nil {
			iter.Close()
			return nil, fmt.Errorf("document %d: %w", n, err)
		}
		if err = t.Add(record, l); err != nil {
			iter.Close()
			return nil, fmt.Errorf("document %d: %w", n, err)
		}
		doc = nil
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("reading examples from mongodb: %v", err)
	}
	return t, nil
}

/*
Write takes a context, a domain, the name of the label field and a table
and inserts a document per example into the collection. It returns the
number of documents inserted.
*/
func (s *Store) Write(ctx context.Context, d *feature.Domain, label string, t *dataset.Table) (int, error) {
	if err := checkFieldNames(d, label); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	examples := t.Examples()
	docs := make([]interface{}, 0, len(examples))
	for i, e := range examples {
		if err := d.Validate(e.Record); err != nil {
			return 0, fmt.Errorf("example %d: %w", i+1, err)
		}
		doc := make(bson.M, d.Len()+1)
		for _, f := range d.Features() {
			doc[f.Name()] = e.Record[f.Column()]
		}
		doc[label] = e.Label
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return 0, nil
	}
	session := s.session.Copy()
	defer session.Close()
	if err := session.DB("").C(s.collection).Insert(docs...); err != nil {
		return 0, fmt.Errorf("inserting examples into mongodb: %v", err)
	}
	return len(docs), nil
}

func stringField(doc bson.M, name string) (string, error) {
	v, ok := doc[name]
	if !ok || v == nil {
		return "", fmt.Errorf("no value for field %s", name)
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	return fmt.Sprintf("%v", v), nil
}

func checkFieldNames(d *feature.Domain, label string) error {
	for _, name := range append(d.Names(), label) {
		if name == "_id" {
			return fmt.Errorf("invalid field name %q: reserved collection field", "_id")
		}
		if name == "" || strings.ContainsAny(name, ".$") {
			return fmt.Errorf("invalid field name %q: empty or contains reserved characters %q or %q", name, ".", "$")
		}
	}
	return nil
}
