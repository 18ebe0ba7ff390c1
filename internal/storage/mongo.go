// Package storage mirrors analysis documents into MongoDB so dashboards
// can query full payloads without touching the relational schema.
package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/edupulse/riskcore/internal/domain"
)

const (
	defaultConnectTimeout = 10 * time.Second

	collectionAnalyses    = "sentiment_analyses"
	collectionAssessments = "risk_assessments"
	collectionSummaries   = "conversation_summaries"
)

// Config holds MongoDB connection settings.
type Config struct {
	URI      string
	Database string
}

// DocumentStore writes analysis results, assessments and conversation
// summaries as whole documents. Writes are fire-and-forget from the
// pipeline's point of view: the relational store is the source of truth
// and the mirror only serves reads.
type DocumentStore struct {
	client   *mongo.Client
	database *mongo.Database
}

// NewDocumentStore connects to MongoDB and verifies the connection.
func NewDocumentStore(ctx context.Context, cfg Config) (*DocumentStore, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &DocumentStore{
		client:   client,
		database: client.Database(cfg.Database),
	}, nil
}

// SaveAnalysis mirrors one sentiment analysis document.
func (s *DocumentStore) SaveAnalysis(ctx context.Context, studentID string, result *domain.SentimentResult) error {
	doc := bson.M{
		"student_id": studentID,
		"analysis":   result,
		"created_at": time.Now(),
	}
	if _, err := s.database.Collection(collectionAnalyses).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("save analysis for %s: %w", studentID, err)
	}
	return nil
}

// SaveAssessment mirrors one structured risk assessment.
func (s *DocumentStore) SaveAssessment(ctx context.Context, assessment *domain.RiskAssessment) error {
	doc := bson.M{
		"student_id": assessment.StudentID,
		"assessment": assessment,
		"created_at": time.Now(),
	}
	if _, err := s.database.Collection(collectionAssessments).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("save assessment for %s: %w", assessment.StudentID, err)
	}
	return nil
}

// SaveSummary mirrors one conversation summary, replacing any previous
// summary for the same session.
func (s *DocumentStore) SaveSummary(ctx context.Context, summary *domain.ConversationSummary) error {
	filter := bson.M{"session_id": summary.SessionID}
	update := bson.M{"$set": bson.M{
		"session_id": summary.SessionID,
		"summary":    summary,
		"updated_at": time.Now(),
	}}
	opts := options.Update().SetUpsert(true)
	if _, err := s.database.Collection(collectionSummaries).UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("save summary for session %s: %w", summary.SessionID, err)
	}
	return nil
}

// Ping verifies the connection for readiness checks.
func (s *DocumentStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (s *DocumentStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
