package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/technotes/notes-api/internal/core/domain"
)

const collectionNotes = "notes"

type NoteRepository struct {
	col *mongo.Collection
}

func NewNoteRepository(db *mongo.Database) *NoteRepository {
	return &NoteRepository{col: db.Collection(collectionNotes)}
}

// mongoNote stores the owner as an ObjectID under "user", matching the
// reference layout of the users collection.
type mongoNote struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	User      primitive.ObjectID `bson:"user"`
	Title     string             `bson:"title"`
	Text      string             `bson:"text"`
	Completed bool               `bson:"completed"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func toMongoNote(n *domain.Note) (mongoNote, error) {
	owner, err := primitive.ObjectIDFromHex(n.Owner)
	if err != nil {
		return mongoNote{}, domain.ErrInvalidNoteData
	}
	return mongoNote{
		User:      owner,
		Title:     n.Title,
		Text:      n.Text,
		Completed: n.Completed,
		CreatedAt: n.CreatedAt.UTC(),
		UpdatedAt: n.UpdatedAt.UTC(),
	}, nil
}

func (mn mongoNote) toDomain() *domain.Note {
	return &domain.Note{
		ID:        mn.ID.Hex(),
		Owner:     mn.User.Hex(),
		Title:     mn.Title,
		Text:      mn.Text,
		Completed: mn.Completed,
		CreatedAt: mn.CreatedAt,
		UpdatedAt: mn.UpdatedAt,
	}
}

// FindAll returns every note in natural order.
func (r *NoteRepository) FindAll(ctx context.Context) ([]*domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find notes: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoNote
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}

	out := make([]*domain.Note, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

// FindByID retrieves a note by hex id. Malformed ids are reported as not found.
func (r *NoteRepository) FindByID(ctx context.Context, id string) (*domain.Note, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNoteNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *NoteRepository) FindByTitle(ctx context.Context, title string) (*domain.Note, error) {
	return r.findOne(ctx, bson.M{"title": title})
}

func (r *NoteRepository) findOne(ctx context.Context, filter bson.M) (*domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mn mongoNote
	if err := r.col.FindOne(ctx, filter).Decode(&mn); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	return mn.toDomain(), nil
}

// HasNotesForUser reports whether at least one note references userID.
func (r *NoteRepository) HasNotesForUser(ctx context.Context, userID string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"user": oid}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count notes: %w", err)
	}
	return n > 0, nil
}

// Create inserts a new note document and sets note.ID.
func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) error {
	doc, err := toMongoNote(note)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateNoteTitle
		}
		return fmt.Errorf("insert note: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("insert note: unexpected id type %T", res.InsertedID)
	}
	note.ID = oid.Hex()
	return nil
}

// Update replaces the stored document with note. An owner that is not a
// valid ObjectID is rejected as invalid data.
func (r *NoteRepository) Update(ctx context.Context, note *domain.Note) error {
	oid, err := primitive.ObjectIDFromHex(note.ID)
	if err != nil {
		return domain.ErrNoteNotFound
	}
	doc, err := toMongoNote(note)
	if err != nil {
		return err
	}
	doc.ID = oid

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateNoteTitle
		}
		return fmt.Errorf("update note: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNoteNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

// EnsureIndexes creates the unique title index and the owner lookup index.
func (r *NoteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
