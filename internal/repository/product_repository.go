package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"swiftcart-backend/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository interface {
	Insert(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindLatest(ctx context.Context, limit int) ([]domain.Product, error)
	Search(ctx context.Context, query domain.SearchQuery, limit int) ([]domain.Product, int64, error)
	Categories(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
	CountByCategory(ctx context.Context, category string) (int64, error)
	CountOutOfStock(ctx context.Context) (int64, error)
	CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error)
	FindCreatedBetween(ctx context.Context, start, end time.Time) ([]domain.Product, error)
	ReduceStock(ctx context.Context, id primitive.ObjectID, quantity int) error
}

type mongoProductRepository struct {
	coll *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) ProductRepository {
	return &mongoProductRepository{coll: db.Collection("products")}
}

func (r *mongoProductRepository) Insert(ctx context.Context, product *domain.Product) error {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	res, err := r.coll.InsertOne(ctx, product)
	if err != nil {
		return err
	}
	product.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *mongoProductRepository) Update(ctx context.Context, product *domain.Product) error {
	product.UpdatedAt = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": product.ID}, bson.M{"$set": bson.M{
		"name":      product.Name,
		"price":     product.Price,
		"stock":     product.Stock,
		"category":  product.Category,
		"photo":     product.Photo,
		"updatedAt": product.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *mongoProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *mongoProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	var product domain.Product
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *mongoProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	return r.find(ctx, bson.M{}, options.Find())
}

func (r *mongoProductRepository) FindLatest(ctx context.Context, limit int) ([]domain.Product, error) {
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetLimit(int64(limit))
	return r.find(ctx, bson.M{}, opts)
}

// Search applies the storefront filters and reports the total match count so
// the handler can derive the page count.
func (r *mongoProductRepository) Search(ctx context.Context, query domain.SearchQuery, limit int) ([]domain.Product, int64, error) {
	filter := bson.M{}
	if query.Search != "" {
		filter["name"] = bson.M{"$regex": query.Search, "$options": "i"}
	}
	if query.Price > 0 {
		filter["price"] = bson.M{"$lte": query.Price}
	}
	if query.Category != "" {
		filter["category"] = query.Category
	}

	page := query.Page
	if page < 1 {
		page = 1
	}

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(int64(limit * (page - 1)))
	if query.Sort == "asc" {
		opts.SetSort(bson.M{"price": 1})
	} else if query.Sort == "desc" {
		opts.SetSort(bson.M{"price": -1})
	}

	products, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *mongoProductRepository) Categories(ctx context.Context) ([]string, error) {
	values, err := r.coll.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, err
	}
	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}
	return categories, nil
}

func (r *mongoProductRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *mongoProductRepository) CountByCategory(ctx context.Context, category string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"category": category})
}

func (r *mongoProductRepository) CountOutOfStock(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"stock": 0})
}

func (r *mongoProductRepository) CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error) {
	return r.coll.CountDocuments(ctx, createdBetween(start, end))
}

func (r *mongoProductRepository) FindCreatedBetween(ctx context.Context, start, end time.Time) ([]domain.Product, error) {
	return r.find(ctx, createdBetween(start, end), options.Find())
}

func (r *mongoProductRepository) ReduceStock(ctx context.Context, id primitive.ObjectID, quantity int) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"stock": -quantity}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *mongoProductRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Product, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	products := []domain.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func createdBetween(start, end time.Time) bson.M {
	return bson.M{"createdAt": bson.M{"$gte": start, "$lte": end}}
}
