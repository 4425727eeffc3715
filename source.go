package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"git.fiblab.net/sim/catalogue/request"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LoadBaseRequests 从文件或MongoDB读取base_requests，path为nil时返回空
func LoadBaseRequests(ctx context.Context, mongoURI string, path *Path) ([]request.BaseRequest, error) {
	if path == nil {
		return nil, nil
	}
	if path.IsFile() {
		f, err := os.Open(path.File)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		doc, err := request.Decode(f)
		if err != nil {
			return nil, err
		}
		log.Infof("loaded %d base requests from %s", len(doc.BaseRequests), path)
		return doc.BaseRequests, nil
	}
	return downloadBaseRequests(ctx, mongoURI, path)
}

// downloadBaseRequests 集合中每个文档为一条BaseRequest，按_id顺序读取
func downloadBaseRequests(ctx context.Context, mongoURI string, path *Path) ([]request.BaseRequest, error) {
	if mongoURI == "" {
		return nil, errors.New("mongo uri is empty")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warnf("disconnect mongo: %v", err)
		}
	}()
	coll := client.Database(path.DB).Collection(path.Coll)
	cursor, err := coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", path, err)
	}
	reqs := make([]request.BaseRequest, 0)
	if err := cursor.All(ctx, &reqs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	log.Infof("downloaded %d base requests from %s", len(reqs), path)
	return reqs, nil
}
