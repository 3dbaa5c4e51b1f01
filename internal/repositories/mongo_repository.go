package repositories

import (
	"context"
	"errors"

	"github.com/shareity/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

// NewDatabaseStore returns a Store backed by PostgreSQL for relational records
// and MongoDB for document-shaped donations and usage reports
func NewDatabaseStore(pgdb *gorm.DB, mongoDB *mongo.Database) *Store {
	return &Store{
		Users:         NewPostgresUserRepository(pgdb),
		NGOs:          NewPostgresNGORepository(pgdb),
		Donations:     NewMongoDonationRepository(mongoDB),
		Needs:         NewPostgresNeedRepository(pgdb),
		Notifications: NewPostgresNotificationRepository(pgdb),
		UsageReports:  NewMongoUsageReportRepository(mongoDB),
		Feedbacks:     NewPostgresFeedbackRepository(pgdb),
	}
}

// MongoDonationRepository implements DonationRepository for MongoDB
type MongoDonationRepository struct {
	collection *mongo.Collection
}

// NewMongoDonationRepository creates a new MongoDonationRepository
func NewMongoDonationRepository(db *mongo.Database) *MongoDonationRepository {
	return &MongoDonationRepository{collection: db.Collection("donations")}
}

// CreateDonation inserts a new donation document
func (r *MongoDonationRepository) CreateDonation(ctx context.Context, donation *models.Donation) error {
	donation.ID = newID(donation.ID)
	donation.CreatedAt = stamp(donation.CreatedAt)
	donation.UpdatedAt = stamp(donation.UpdatedAt)
	_, err := r.collection.InsertOne(ctx, donation)
	return err
}

// GetDonationByID retrieves a donation by ID
func (r *MongoDonationRepository) GetDonationByID(ctx context.Context, id string) (*models.Donation, error) {
	var donation models.Donation
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&donation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &donation, nil
}

// GetDonations lists donations matching the filter, newest first
func (r *MongoDonationRepository) GetDonations(ctx context.Context, filter models.DonationFilter) ([]models.Donation, error) {
	query := donationQuery(filter)
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	donations := []models.Donation{}
	if err = cursor.All(ctx, &donations); err != nil {
		return nil, err
	}
	return donations, nil
}

// donationQuery maps a filter to a bson query with the same semantics as
// DonationFilter.Matches. Unassigned together with an NgoID matches nothing.
func donationQuery(filter models.DonationFilter) bson.M {
	query := bson.M{}
	if filter.DonorID != "" {
		query["donor_id"] = filter.DonorID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	switch {
	case filter.Unassigned && filter.NgoID != "":
		query["ngo_id"] = bson.M{"$in": bson.A{}}
	case filter.Unassigned:
		query["ngo_id"] = bson.M{"$in": bson.A{nil, ""}}
	case filter.NgoID != "":
		query["ngo_id"] = filter.NgoID
	}
	return query
}

// UpdateDonation replaces the stored donation document
func (r *MongoDonationRepository) UpdateDonation(ctx context.Context, donation *models.Donation) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": donation.ID}, donation)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteDonation removes a donation by ID
func (r *MongoDonationRepository) DeleteDonation(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoUsageReportRepository implements UsageReportRepository for MongoDB
type MongoUsageReportRepository struct {
	collection *mongo.Collection
}

// NewMongoUsageReportRepository creates a new MongoUsageReportRepository
func NewMongoUsageReportRepository(db *mongo.Database) *MongoUsageReportRepository {
	return &MongoUsageReportRepository{collection: db.Collection("usage_reports")}
}

// CreateUsageReport inserts a new usage report
func (r *MongoUsageReportRepository) CreateUsageReport(ctx context.Context, report *models.UsageReport) error {
	report.ID = newID(report.ID)
	report.CreatedAt = stamp(report.CreatedAt)
	_, err := r.collection.InsertOne(ctx, report)
	return err
}

// GetUsageReports lists usage reports, newest first
func (r *MongoUsageReportRepository) GetUsageReports(ctx context.Context, filter models.UsageReportFilter) ([]models.UsageReport, error) {
	query := bson.M{}
	if filter.NgoID != "" {
		query["ngo_id"] = filter.NgoID
	}
	if filter.DonationID != "" {
		query["donation_id"] = filter.DonationID
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reports := []models.UsageReport{}
	if err = cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}
