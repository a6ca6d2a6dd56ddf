package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type seedOptions struct {
	envName         string
	formCount       int
	submissionCount int
	dropCollections bool
	randomSeed      int64
}

type collections struct {
	forms         string
	submissions   string
	failedMirrors string
}

type fieldOptionDocument struct {
	Label string `bson:"label"`
	Value string `bson:"value"`
}

type fieldDocument struct {
	ID          string                `bson:"id"`
	Type        string                `bson:"type"`
	Label       string                `bson:"label,omitempty"`
	Required    bool                  `bson:"required"`
	Placeholder string                `bson:"placeholder,omitempty"`
	HelperText  string                `bson:"helperText,omitempty"`
	Options     []fieldOptionDocument `bson:"options,omitempty"`
}

type formDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Fields      []fieldDocument    `bson:"fields"`
	SheetName   string             `bson:"sheetName"`
	ShareSlug   string             `bson:"shareSlug"`
	OwnerUID    string             `bson:"ownerUid"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

type submissionDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	FormID    primitive.ObjectID `bson:"formId"`
	Data      bson.M             `bson:"data"`
	FileLinks map[string]string  `bson:"fileLinks,omitempty"`
	UserAgent string             `bson:"userAgent,omitempty"`
	IPAddress string             `bson:"ipAddress,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func main() {
	opts := parseFlags()

	if err := loadEnvFiles(opts.envName); err != nil {
		log.Fatalf("failed to load environment files: %v", err)
	}

	cfg := collections{
		forms:         envOrDefault("FORM_COLLECTION", "forms"),
		submissions:   envOrDefault("SUBMISSION_COLLECTION", "submissions"),
		failedMirrors: envOrDefault("FAILED_MIRROR_COLLECTION", "failed_mirrors"),
	}

	mongoURI := envOrDefault("MONGO_URI", "mongodb://localhost:27017")
	dbName := envOrDefault("MONGO_DB", "smartform")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(dbName)

	if opts.dropCollections {
		dropCollections(ctx, db, cfg)
		log.Printf("dropped existing collections")
	}

	if err := ensureIndexes(ctx, db, cfg); err != nil {
		log.Fatalf("failed to create indexes: %v", err)
	}

	rng := rand.New(rand.NewSource(opts.randomSeed))

	formDocs := generateForms(rng, opts.formCount)
	if len(formDocs) == 0 {
		log.Fatal("no form docs were generated")
	}
	if err := insertMany(ctx, db.Collection(cfg.forms), toAnySlice(formDocs)); err != nil {
		log.Fatalf("failed to insert forms: %v", err)
	}

	submissionDocs := generateSubmissions(rng, formDocs, opts.submissionCount)
	if len(submissionDocs) > 0 {
		if err := insertMany(ctx, db.Collection(cfg.submissions), toAnySlice(submissionDocs)); err != nil {
			log.Fatalf("failed to insert submissions: %v", err)
		}
	}

	log.Printf("seed complete: forms=%d submissions=%d", len(formDocs), len(submissionDocs))
	log.Printf("Mongo: %s / %s (env=%s)", mongoURI, dbName, opts.envName)
	for _, form := range formDocs {
		log.Printf("  %s -> /forms/%s", form.Title, form.ShareSlug)
	}
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.StringVar(&opts.envName, "env", "local", "env file name under env/ (e.g. local, staging)")
	flag.IntVar(&opts.formCount, "forms", 3, "number of forms to generate")
	flag.IntVar(&opts.submissionCount, "submissions", 25, "total number of submissions to generate")
	flag.BoolVar(&opts.dropCollections, "drop", true, "drop existing collections before inserting")
	defaultSeed := time.Now().UnixNano()
	flag.Int64Var(&opts.randomSeed, "seed", defaultSeed, "random seed (for reproducibility)")
	flag.Parse()

	if opts.formCount <= 0 {
		log.Fatal("forms must be at least 1")
	}
	if opts.submissionCount < 0 {
		opts.submissionCount = 0
	}
	return opts
}

func loadEnvFiles(envName string) error {
	base := filepath.Clean("env")
	files := []string{
		filepath.Join(base, "shared.env"),
		filepath.Join(base, fmt.Sprintf("%s.env", envName)),
	}
	for _, file := range files {
		if err := loadEnvFile(file); err != nil {
			// Seeding only needs MONGO_URI; missing env files are fine when
			// the variables are already exported.
			log.Printf("WARN: %v", err)
		}
	}
	return nil
}

func loadEnvFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, `"'`)
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func dropCollections(ctx context.Context, db *mongo.Database, cfg collections) {
	for _, name := range []string{cfg.forms, cfg.submissions, cfg.failedMirrors} {
		if err := db.Collection(name).Drop(ctx); err != nil {
			log.Printf("WARN: failed to drop collection %s: %v", name, err)
		}
	}
}

func ensureIndexes(ctx context.Context, db *mongo.Database, cfg collections) error {
	formIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "shareSlug", Value: 1}},
			Options: options.Index().SetName("uniq_form_shareSlug").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "ownerUid", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_form_owner_createdAt"),
		},
	}
	if _, err := db.Collection(cfg.forms).Indexes().CreateMany(ctx, formIndexes); err != nil {
		return err
	}

	submissionIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "formId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("idx_submission_form_createdAt"),
		},
	}
	_, err := db.Collection(cfg.submissions).Indexes().CreateMany(ctx, submissionIndexes)
	return err
}

func generateForms(rng *rand.Rand, count int) []formDocument {
	templates := []struct {
		title       string
		description string
		fields      []fieldDocument
	}{
		{
			title:       "Event Registration",
			description: "Sign up for the annual community event.",
			fields: []fieldDocument{
				{ID: "name", Type: "text", Label: "Full Name", Required: true},
				{ID: "email", Type: "email", Label: "Email Address", Required: true},
				{ID: "guests", Type: "number", Label: "Number of Guests"},
				{ID: "sessions", Type: "checkbox", Label: "Sessions", Options: []fieldOptionDocument{
					{Label: "Morning", Value: "morning"},
					{Label: "Afternoon", Value: "afternoon"},
					{Label: "Evening", Value: "evening"},
				}},
			},
		},
		{
			title:       "Customer Feedback",
			description: "Tell us how we did.",
			fields: []fieldDocument{
				{ID: "rating", Type: "dropdown", Label: "Rating", Required: true, Options: []fieldOptionDocument{
					{Label: "Excellent", Value: "5"},
					{Label: "Good", Value: "4"},
					{Label: "Average", Value: "3"},
					{Label: "Poor", Value: "2"},
				}},
				{ID: "comments", Type: "textarea", Label: "Comments"},
			},
		},
		{
			title:       "Job Application",
			description: "Apply for an open position.",
			fields: []fieldDocument{
				{ID: "name", Type: "text", Label: "Full Name", Required: true},
				{ID: "phone", Type: "phone", Label: "Phone Number", Required: true},
				{ID: "resume", Type: "file", Label: "Resume", Required: true},
				{ID: "start_date", Type: "date", Label: "Earliest Start Date"},
			},
		},
	}

	now := time.Now().UTC()
	docs := make([]formDocument, 0, count)
	for i := 0; i < count; i++ {
		tpl := templates[i%len(templates)]
		createdAt := now.Add(-time.Duration(rng.Intn(30*24)) * time.Hour)
		slugBase := strings.ReplaceAll(strings.ToLower(tpl.title), " ", "-")
		docs = append(docs, formDocument{
			ID:          primitive.NewObjectID(),
			Title:       tpl.title,
			Description: tpl.description,
			Fields:      tpl.fields,
			SheetName:   fmt.Sprintf("%s-%04d", tpl.title, rng.Intn(10000)),
			ShareSlug:   fmt.Sprintf("%s-%d", slugBase, createdAt.Unix()),
			OwnerUID:    "seed-user",
			CreatedAt:   createdAt,
		})
	}
	return docs
}

func generateSubmissions(rng *rand.Rand, forms []formDocument, count int) []submissionDocument {
	names := []string{"Aiko Tanaka", "Ben Carter", "Chloe Nguyen", "Daniel Ortiz", "Emi Sato"}
	comments := []string{"Great service.", "Could be faster.", "Loved it!", "Will come again.", ""}

	docs := make([]submissionDocument, 0, count)
	for i := 0; i < count; i++ {
		form := forms[rng.Intn(len(forms))]
		data := bson.M{}
		fileLinks := map[string]string{}
		for _, field := range form.Fields {
			switch field.Type {
			case "text":
				data[field.ID] = names[rng.Intn(len(names))]
			case "email":
				data[field.ID] = fmt.Sprintf("user%d@example.com", rng.Intn(1000))
			case "phone":
				data[field.ID] = fmt.Sprintf("080-%04d-%04d", rng.Intn(10000), rng.Intn(10000))
			case "number":
				data[field.ID] = rng.Intn(5)
			case "date":
				data[field.ID] = time.Now().AddDate(0, 0, rng.Intn(60)).Format("2006-01-02")
			case "textarea":
				data[field.ID] = comments[rng.Intn(len(comments))]
			case "dropdown", "radio":
				if len(field.Options) > 0 {
					data[field.ID] = field.Options[rng.Intn(len(field.Options))].Value
				}
			case "checkbox":
				picked := make([]string, 0, len(field.Options))
				for _, opt := range field.Options {
					if rng.Intn(2) == 0 {
						picked = append(picked, opt.Value)
					}
				}
				if len(picked) > 0 {
					data[field.ID] = picked
				}
			case "file":
				fileLinks[field.ID] = fmt.Sprintf("https://drive.google.com/file/d/seed-%d/view", rng.Intn(100000))
			}
		}
		docs = append(docs, submissionDocument{
			ID:        primitive.NewObjectID(),
			FormID:    form.ID,
			Data:      data,
			FileLinks: fileLinks,
			UserAgent: "seed/1.0",
			IPAddress: fmt.Sprintf("192.0.2.%d", rng.Intn(255)),
			CreatedAt: form.CreatedAt.Add(time.Duration(rng.Intn(20*24)) * time.Hour),
		})
	}
	return docs
}

func insertMany(ctx context.Context, collection *mongo.Collection, docs []any) error {
	if len(docs) == 0 {
		return nil
	}
	_, err := collection.InsertMany(ctx, docs)
	return err
}

func toAnySlice[T any](items []T) []any {
	result := make([]any, 0, len(items))
	for _, item := range items {
		result = append(result, item)
	}
	return result
}
