package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/templui/userbase/internal/model"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names in the document store.
const (
	AccountsCollection = "accounts"
	ProfilesCollection = "profile"
)

// EnsureMongoIndexes creates the unique indexes that back duplicate
// detection. It is the document-store counterpart of the SQL migrations.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	unique := func(key string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: key, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
	}

	_, err := db.Collection(AccountsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		unique("email"),
		unique("username"),
	})
	if err != nil {
		return fmt.Errorf("failed to create account indexes: %w", err)
	}

	_, err = db.Collection(ProfilesCollection).Indexes().CreateOne(ctx, unique("email"))
	if err != nil {
		return fmt.Errorf("failed to create profile indexes: %w", err)
	}

	return nil
}

type mongoAccountRepository struct {
	coll *mongo.Collection
}

func NewMongoAccountRepository(db *mongo.Database) AccountRepository {
	return &mongoAccountRepository{coll: db.Collection(AccountsCollection)}
}

var byCreatedAt = bson.D{{Key: "createdAt", Value: 1}}

func byEmail(email string) bson.D {
	return bson.D{{Key: "email", Value: email}}
}

func (r *mongoAccountRepository) Create(ctx context.Context, account *model.Account) error {
	_, err := r.coll.InsertOne(ctx, account)
	if err != nil {
		return duplicateKey(err)
	}
	return nil
}

func (r *mongoAccountRepository) Exists(ctx context.Context, email string) (bool, error) {
	return exists(ctx, r.coll, byEmail(email))
}

func (r *mongoAccountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return exists(ctx, r.coll, bson.D{{Key: "username", Value: username}})
}

func (r *mongoAccountRepository) ByEmail(ctx context.Context, email string) (*model.Account, error) {
	account := &model.Account{}
	err := r.coll.FindOne(ctx, byEmail(email)).Decode(account)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (r *mongoAccountRepository) UpdateLastLogin(ctx context.Context, email string, at time.Time) error {
	return updateOne(ctx, r.coll, email, bson.D{{Key: "lastLogin", Value: at}}, ErrAccountNotFound)
}

func (r *mongoAccountRepository) UpdatePicture(ctx context.Context, email, pictureURL string) error {
	return updateOne(ctx, r.coll, email, bson.D{{Key: "picture", Value: pictureURL}}, ErrAccountNotFound)
}

func (r *mongoAccountRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	result, err := r.coll.DeleteMany(ctx, byEmail(email))
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *mongoAccountRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	return r.coll.CountDocuments(ctx, byEmail(email))
}

func (r *mongoAccountRepository) List(ctx context.Context) ([]model.AccountSummary, error) {
	projection := bson.D{
		{Key: "_id", Value: 0},
		{Key: "email", Value: 1},
		{Key: "username", Value: 1},
		{Key: "createdAt", Value: 1},
		{Key: "lastLogin", Value: 1},
	}
	opts := options.Find().SetProjection(projection).SetSort(byCreatedAt)
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}

	summaries := []model.AccountSummary{}
	err = cursor.All(ctx, &summaries)
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

type mongoProfileRepository struct {
	coll *mongo.Collection
}

func NewMongoProfileRepository(db *mongo.Database) ProfileRepository {
	return &mongoProfileRepository{coll: db.Collection(ProfilesCollection)}
}

func (r *mongoProfileRepository) Create(ctx context.Context, profile *model.Profile) error {
	prepareProfile(profile)

	_, err := r.coll.InsertOne(ctx, profile)
	if err != nil {
		return duplicateKey(err)
	}
	return nil
}

func (r *mongoProfileRepository) Exists(ctx context.Context, email string) (bool, error) {
	return exists(ctx, r.coll, byEmail(email))
}

func (r *mongoProfileRepository) ByEmail(ctx context.Context, email string) (*model.Profile, error) {
	profile := &model.Profile{}
	err := r.coll.FindOne(ctx, byEmail(email)).Decode(profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *mongoProfileRepository) UpdateFields(ctx context.Context, email string, update model.ProfileUpdate) error {
	return updateOne(ctx, r.coll, email, profileSet(update, time.Now()), ErrProfileNotFound)
}

func (r *mongoProfileRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	result, err := r.coll.DeleteMany(ctx, byEmail(email))
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *mongoProfileRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	return r.coll.CountDocuments(ctx, byEmail(email))
}

func (r *mongoProfileRepository) List(ctx context.Context) ([]model.Profile, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(byCreatedAt))
	if err != nil {
		return nil, err
	}

	profiles := []model.Profile{}
	err = cursor.All(ctx, &profiles)
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// profileSet builds the $set document for a partial update. Only supplied
// fields are written.
func profileSet(update model.ProfileUpdate, now time.Time) bson.D {
	set := bson.D{}
	add := func(key string, value *string) {
		if value != nil {
			set = append(set, bson.E{Key: key, Value: *value})
		}
	}
	add("picture", update.PictureURL)
	add("bio", update.Bio)
	add("location", update.Location)
	add("phoneNumber", update.PhoneNumber)
	return append(set, bson.E{Key: "updatedAt", Value: now})
}

func exists(ctx context.Context, coll *mongo.Collection, filter bson.D) (bool, error) {
	count, err := coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func updateOne(ctx context.Context, coll *mongo.Collection, email string, set bson.D, notFound error) error {
	result, err := coll.UpdateOne(ctx, byEmail(email), bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return notFound
	}
	return nil
}

// duplicateKey maps unique index violations onto the duplicate errors. The
// index name (username_1, email_1) is part of the server message.
func duplicateKey(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}
	if strings.Contains(err.Error(), "username") {
		return ErrDuplicateUsername
	}
	return ErrDuplicateEmail
}
