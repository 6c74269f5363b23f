package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"formforge/internal/config"
	"formforge/internal/model"
	"formforge/internal/repository"
)

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(config.Load().MongoDB)
	formRepo := repository.NewFormRepo(db)
	questionRepo := repository.NewQuestionRepo(db)

	userID := "user_seed0001"

	questions := []model.Question{
		{
			Type: model.QuestionHeading,
			Text: "French Revolution Quiz",
		},
		{
			Type:    model.QuestionComprehension,
			Passage: "The French Revolution began in 1789. Years of poor harvests and resentment of the monarchy pushed commoners to revolt, and the storming of the Bastille became its defining moment.",
			SubQuestions: []model.SubQuestion{
				{
					ID:            "seed-sq-1",
					Text:          "What pushed commoners to revolt?",
					Options:       []string{"Poor harvests and resentment", "A foreign invasion", "A plague"},
					CorrectOption: "Poor harvests and resentment",
				},
				{
					ID:            "seed-sq-2",
					Text:          "Which event became the revolution's defining moment?",
					Options:       []string{"The Tennis Court Oath", "The storming of the Bastille"},
					CorrectOption: "The storming of the Bastille",
				},
			},
		},
		{
			Type:       model.QuestionCategorize,
			Text:       "Sort these into the right group",
			Categories: []string{"Fruit", "Vegetable"},
			Items: []model.CategorizeItem{
				{Text: "Apple", Category: "Fruit"},
				{Text: "Carrot", Category: "Vegetable"},
				{Text: "Banana", Category: "Fruit"},
			},
		},
		{
			Type:         model.QuestionCloze,
			Passage:      "[BLANK] fell in [BLANK] when the [BLANK] sparked the [BLANK].",
			BlankAnswers: []string{"Paris", "1789", "Bastille", "Revolution"},
		},
		{
			Type:          model.QuestionMultipleChoice,
			Text:          "Who was king of France in 1789?",
			Options:       []string{"Louis XIV", "Louis XVI", "Napoleon"},
			CorrectAnswer: "Louis XVI",
		},
	}

	questionIDs := make([]string, 0, len(questions))
	for i := range questions {
		q := questions[i]
		if err := q.Validate(); err != nil {
			log.Fatalf("seed question %d invalid: %v", i+1, err)
		}
		id, err := questionRepo.Create(ctx, &q)
		if err != nil {
			log.Fatalf("Failed to create question: %v", err)
		}
		questionIDs = append(questionIDs, id)
	}

	form := &model.Form{
		UserID:      userID,
		Username:    "Seed User",
		Title:       "History Demo Quiz",
		Theme:       "Light",
		QuestionIDs: questionIDs,
	}
	formID, err := formRepo.Create(ctx, form)
	if err != nil {
		log.Fatalf("Failed to create form: %v", err)
	}

	fmt.Printf("Seeded form %s with %d questions for %s\n", formID, len(questionIDs), userID)
}
