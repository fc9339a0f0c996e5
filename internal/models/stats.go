package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	StatsDbName        = "portfolio"
	GithubStatsColName = "github_stats"
	AchievementColName = "achievements"
)

// GithubStats is a denormalized cache row written by the stats sync job and
// read-only from the HTTP surface except for the manual refresh trigger.
type GithubStats struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username    string             `bson:"username" json:"username"`
	PublicRepos int                `bson:"public_repos" json:"public_repos"`
	Followers   int                `bson:"followers" json:"followers"`
	Following   int                `bson:"following" json:"following"`
	TotalStars  int                `bson:"total_stars" json:"total_stars"`
	TotalForks  int                `bson:"total_forks" json:"total_forks"`
	Languages   []string           `bson:"languages" json:"languages"`
	FetchedAt   time.Time          `bson:"fetched_at" json:"fetched_at"`
}

// Achievement is a badge-progress row derived from the cached stats.
type Achievement struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Slug      string             `bson:"slug" json:"slug"`
	Title     string             `bson:"title" json:"title"`
	Progress  int                `bson:"progress" json:"progress"`
	Target    int                `bson:"target" json:"target"`
	Unlocked  bool               `bson:"unlocked" json:"unlocked"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

type StatsRepo interface {
	UpsertGithubStats(ctx context.Context, stats *GithubStats) (*GithubStats, error)
	GetGithubStats(ctx context.Context, username string) (*GithubStats, error)
	UpsertAchievement(ctx context.Context, a *Achievement) error
	ListAchievements(ctx context.Context) ([]*Achievement, error)
}

func (mdb *MongodbRepo) UpsertGithubStats(ctx context.Context, stats *GithubStats) (*GithubStats, error) {
	col, err := mdb.GetCollection(ctx, StatsDbName, GithubStatsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{"username": stats.Username}
	update := bson.M{
		"$set": bson.M{
			"public_repos": stats.PublicRepos,
			"followers":    stats.Followers,
			"following":    stats.Following,
			"total_stars":  stats.TotalStars,
			"total_forks":  stats.TotalForks,
			"languages":    stats.Languages,
			"fetched_at":   stats.FetchedAt,
		},
		"$setOnInsert": bson.M{
			"username": stats.Username,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result GithubStats
	if err := col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result); err != nil {
		return nil, fmt.Errorf("error upserting github stats: %v", err)
	}

	return &result, nil
}

func (mdb *MongodbRepo) GetGithubStats(ctx context.Context, username string) (*GithubStats, error) {
	col, err := mdb.GetCollection(ctx, StatsDbName, GithubStatsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var stats GithubStats
	if err := col.FindOne(ctx, bson.M{"username": username}).Decode(&stats); err != nil {
		return nil, fmt.Errorf("error finding github stats: %v", err)
	}

	return &stats, nil
}

func (mdb *MongodbRepo) UpsertAchievement(ctx context.Context, a *Achievement) error {
	col, err := mdb.GetCollection(ctx, StatsDbName, AchievementColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{"slug": a.Slug}
	update := bson.M{
		"$set": bson.M{
			"title":      a.Title,
			"progress":   a.Progress,
			"target":     a.Target,
			"unlocked":   a.Unlocked,
			"updated_at": a.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"slug": a.Slug,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := col.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("error upserting achievement: %v", err)
	}

	return nil
}

func (mdb *MongodbRepo) ListAchievements(ctx context.Context) ([]*Achievement, error) {
	col, err := mdb.GetCollection(ctx, StatsDbName, AchievementColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	cursor, err := col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error finding achievements: %v", err)
	}
	defer cursor.Close(ctx)

	var achievements []*Achievement
	for cursor.Next(ctx) {
		var a Achievement
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("error decoding achievement: %v", err)
		}
		achievements = append(achievements, &a)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return achievements, nil
}
