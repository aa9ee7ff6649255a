/*
Copyright © 2025 proposalops
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/proposalops/docchat-be/config"
	"github.com/proposalops/docchat-be/database"
	"github.com/proposalops/docchat-be/repository"
	"github.com/proposalops/docchat-be/service"
	"github.com/proposalops/docchat-be/types"
)

// uploadDocumentCmd represents the upload-document command
var uploadDocumentCmd = &cobra.Command{
	Use:   "upload-document",
	Short: "Ingest a single document for an owner",
	Long: `Extracts the text of one local file, stores the document and computes
its embedding, exactly as the upload endpoint would.`,
	Run: func(cmd *cobra.Command, args []string) {
		filePath, _ := cmd.Flags().GetString("file")
		ownerID, _ := cmd.Flags().GetString("owner")
		title, _ := cmd.Flags().GetString("title")
		docType, _ := cmd.Flags().GetString("doc-type")
		clientName, _ := cmd.Flags().GetString("client")
		industry, _ := cmd.Flags().GetString("industry")
		year, _ := cmd.Flags().GetInt("year")
		summary, _ := cmd.Flags().GetString("summary")
		tags, _ := cmd.Flags().GetStringArray("tags")
		reinit, _ := cmd.Flags().GetBool("reinit")

		if filePath == "" || ownerID == "" {
			log.Fatal("both --file and --owner are required")
		}

		fileService, vectorIndex := buildIngestStack()
		if reinit {
			if err := vectorIndex.ReInit(); err != nil {
				log.Fatalf("Failed to reinitialize vector index: %v", err)
			}
		}

		req := types.UploadRequest{
			Title:      title,
			DocType:    docType,
			ClientName: clientName,
			Industry:   industry,
			Year:       year,
			Summary:    summary,
			Tags:       tags,
		}
		doc, err := fileService.IngestFile(context.Background(), ownerID, req, filePath)
		if err != nil {
			log.Fatalf("Failed to ingest document: %v", err)
		}
		fmt.Printf("Ingested %q as %s (embedded: %v)\n", doc.Title, doc.ID, doc.HasEmbedding)
	},
}

// buildIngestStack wires the minimal dependency chain the seeding CLIs
// need: config, mongo, weaviate and the OpenAI embedder.
func buildIngestStack() (*service.FileService, *database.WeaviateIndex) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	mongoClient, err := database.NewMongoClient(context.Background(), cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	mongoDb := mongoClient.Database(cfg.MongoDatabase)

	vectorIndex, err := database.NewWeaviateIndex(cfg.Weaviate)
	if err != nil {
		log.Fatalf("Failed to connect to Weaviate: %v", err)
	}

	docRepo := repository.NewDocumentRepo(mongoDb.Collection("documents"))
	openaiService := service.NewOpenAIService(cfg.OpenAI)
	extractService := service.NewExtractService()

	fileService, err := service.NewFileService(cfg.UploadDir, docRepo, vectorIndex, openaiService, extractService, cfg.Retrieval.CallTimeout, logger)
	if err != nil {
		log.Fatalf("Failed to initialize file service: %v", err)
	}
	return fileService, vectorIndex
}

func init() {
	rootCmd.AddCommand(uploadDocumentCmd)

	uploadDocumentCmd.Flags().StringP("file", "f", "", "Path to the file to ingest")
	uploadDocumentCmd.Flags().StringP("owner", "o", "", "Owner user ID the document belongs to")
	uploadDocumentCmd.Flags().String("title", "", "Document title (defaults to the file name)")
	uploadDocumentCmd.Flags().String("doc-type", "", "Document type (RFP, Case Study, Proposal, Win-Loss Analysis)")
	uploadDocumentCmd.Flags().String("client", "", "Client name")
	uploadDocumentCmd.Flags().String("industry", "", "Industry")
	uploadDocumentCmd.Flags().Int("year", 0, "Document year")
	uploadDocumentCmd.Flags().String("summary", "", "Short summary")
	uploadDocumentCmd.Flags().StringArrayP("tags", "g", []string{}, "Tags for the document")
	uploadDocumentCmd.Flags().BoolP("reinit", "r", false, "Drop and recreate the vector index first")
}
