package router

import (
	"bytes"
	"context"
	"errors"
	"io"
	"reflect"
	"sort"

	"github.com/princinho/parcelly/models"
	"github.com/princinho/parcelly/repository"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func cloneDoc(doc models.Document) models.Document {
	out := make(models.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

// sortedDocs returns the documents in insertion order of their ids.
func sortedDocs(m map[bson.ObjectID]models.Document, keep func(models.Document) bool) []models.Document {
	ids := make([]bson.ObjectID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Hex() < ids[j].Hex() })

	docs := make([]models.Document, 0)
	for _, id := range ids {
		if keep == nil || keep(m[id]) {
			docs = append(docs, cloneDoc(m[id]))
		}
	}
	return docs
}

type fakeParcels struct {
	docs       map[bson.ObjectID]models.Document
	mutations  int
	failUpdate error
	// beforeUpdate runs ahead of every update, after the field set is built.
	beforeUpdate func()
}

func newFakeParcels() *fakeParcels {
	return &fakeParcels{docs: map[bson.ObjectID]models.Document{}}
}

func (f *fakeParcels) seed(doc models.Document) bson.ObjectID {
	id := bson.NewObjectID()
	doc = cloneDoc(doc)
	doc["_id"] = id
	f.docs[id] = doc
	return id
}

func (f *fakeParcels) List(context.Context) ([]models.Document, error) {
	return sortedDocs(f.docs, nil), nil
}

func (f *fakeParcels) ListByEmail(_ context.Context, email string) ([]models.Document, error) {
	return sortedDocs(f.docs, func(d models.Document) bool {
		return models.StringField(d, models.ParcelFieldEmail) == email
	}), nil
}

func (f *fakeParcels) ListByDeliveryMan(_ context.Context, id string) ([]models.Document, error) {
	return sortedDocs(f.docs, func(d models.Document) bool {
		return models.StringField(d, models.ParcelFieldDeliveryManID) == id
	}), nil
}

func (f *fakeParcels) FindByID(_ context.Context, id bson.ObjectID) (models.Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneDoc(doc), nil
}

func (f *fakeParcels) Create(_ context.Context, doc models.Document) (*models.InsertResult, error) {
	f.mutations++
	delete(doc, "_id")
	id := f.seed(doc)
	return &models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (f *fakeParcels) Delete(_ context.Context, id bson.ObjectID) (*models.DeleteResult, error) {
	f.mutations++
	res := &models.DeleteResult{Acknowledged: true}
	if _, ok := f.docs[id]; ok {
		delete(f.docs, id)
		res.DeletedCount = 1
	}
	return res, nil
}

func (f *fakeParcels) Update(_ context.Context, id bson.ObjectID, upd models.FieldUpdate) (*models.UpdateResult, error) {
	set, err := repository.BuildSet(upd, models.ParcelEditableFields)
	if err != nil {
		return nil, err
	}
	if f.beforeUpdate != nil {
		f.beforeUpdate()
	}
	if f.failUpdate != nil {
		return nil, f.failUpdate
	}
	f.mutations++

	res := &models.UpdateResult{Acknowledged: true}
	doc, ok := f.docs[id]
	if !ok {
		if !upd.Upsert {
			return res, nil
		}
		doc = models.Document{"_id": id}
		f.docs[id] = doc
		res.UpsertedCount = 1
		res.UpsertedID = id
	} else {
		res.MatchedCount = 1
	}

	for k, v := range set {
		if !reflect.DeepEqual(doc[k], v) {
			res.ModifiedCount = 1
		}
		doc[k] = v
	}
	if res.UpsertedCount == 1 {
		res.ModifiedCount = 0
	}
	return res, nil
}

type fakeUsers struct {
	docs      map[bson.ObjectID]models.Document
	mutations int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{docs: map[bson.ObjectID]models.Document{}}
}

func (f *fakeUsers) seed(doc models.Document) bson.ObjectID {
	id := bson.NewObjectID()
	doc = cloneDoc(doc)
	doc["_id"] = id
	f.docs[id] = doc
	return id
}

func (f *fakeUsers) byEmail(email string) (models.Document, bool) {
	for _, d := range f.docs {
		if models.StringField(d, models.UserFieldEmail) == email {
			return d, true
		}
	}
	return nil, false
}

func (f *fakeUsers) List(context.Context) ([]models.Document, error) {
	return sortedDocs(f.docs, nil), nil
}

func (f *fakeUsers) ListByRole(_ context.Context, role models.Role) ([]models.Document, error) {
	return sortedDocs(f.docs, func(d models.Document) bool { return models.UserRole(d) == role }), nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (models.Document, error) {
	doc, ok := f.byEmail(email)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneDoc(doc), nil
}

func (f *fakeUsers) Create(_ context.Context, doc models.Document) (*models.InsertResult, error) {
	if email := models.StringField(doc, models.UserFieldEmail); email != "" {
		if _, ok := f.byEmail(email); ok {
			return nil, mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}}}
		}
	}
	f.mutations++
	delete(doc, "_id")
	return &models.InsertResult{Acknowledged: true, InsertedID: f.seed(doc)}, nil
}

func (f *fakeUsers) UpsertByEmail(_ context.Context, email string, fields bson.M) (*models.UpdateResult, error) {
	set, err := repository.BuildSet(models.FieldUpdate{Mode: models.MergeFields, Fields: fields}, nil)
	if err != nil {
		return nil, err
	}
	f.mutations++

	doc, ok := f.byEmail(email)
	res := &models.UpdateResult{Acknowledged: true}
	if !ok {
		id := f.seed(models.Document{models.UserFieldEmail: email})
		doc = f.docs[id]
		res.UpsertedCount = 1
		res.UpsertedID = id
	} else {
		res.MatchedCount = 1
		res.ModifiedCount = 1
	}
	for k, v := range set {
		doc[k] = v
	}
	return res, nil
}

func (f *fakeUsers) InsertIfAbsent(_ context.Context, email string, fields bson.M) (bool, error) {
	if _, ok := f.byEmail(email); ok {
		return false, nil
	}
	f.mutations++
	doc := cloneDoc(fields)
	doc[models.UserFieldEmail] = email
	f.seed(doc)
	return true, nil
}

func (f *fakeUsers) SetRole(_ context.Context, id bson.ObjectID, role models.Role) (*models.UpdateResult, error) {
	f.mutations++
	res := &models.UpdateResult{Acknowledged: true}
	doc, ok := f.docs[id]
	if !ok {
		return res, nil
	}
	res.MatchedCount = 1
	if models.UserRole(doc) != role {
		res.ModifiedCount = 1
	}
	doc[models.UserFieldRole] = string(role)
	return res, nil
}

type fakeReviews struct {
	docs map[bson.ObjectID]models.Document
}

func newFakeReviews() *fakeReviews {
	return &fakeReviews{docs: map[bson.ObjectID]models.Document{}}
}

func (f *fakeReviews) seed(doc models.Document) bson.ObjectID {
	id := bson.NewObjectID()
	doc = cloneDoc(doc)
	doc["_id"] = id
	f.docs[id] = doc
	return id
}

func (f *fakeReviews) List(context.Context) ([]models.Document, error) {
	return sortedDocs(f.docs, nil), nil
}

func (f *fakeReviews) ListByDeliveryMan(_ context.Context, id string) ([]models.Document, error) {
	return sortedDocs(f.docs, func(d models.Document) bool {
		return models.StringField(d, models.ReviewFieldDeliveryManID) == id
	}), nil
}

func (f *fakeReviews) Create(_ context.Context, doc models.Document) (*models.InsertResult, error) {
	delete(doc, "_id")
	return &models.InsertResult{Acknowledged: true, InsertedID: f.seed(doc)}, nil
}

type fakeGateway struct {
	amounts []int64
	err     error
}

func (g *fakeGateway) CreateIntent(_ context.Context, amount int64) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	g.amounts = append(g.amounts, amount)
	return "pi_test_secret_123", nil
}

type fakeStore struct {
	objects map[string][]byte
	types   map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *fakeStore) Put(_ context.Context, key string, body io.Reader, contentType string) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", err
	}
	s.objects[key] = buf.Bytes()
	s.types[key] = contentType
	return "https://files.example.com/proofs/" + key, nil
}

func (s *fakeStore) Delete(_ context.Context, key string) error {
	if _, ok := s.objects[key]; !ok {
		return errors.New("no such object")
	}
	delete(s.objects, key)
	return nil
}
