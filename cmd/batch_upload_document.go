/*
Copyright © 2025 proposalops
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/proposalops/docchat-be/service"
	"github.com/proposalops/docchat-be/types"
)

// batchUploadDocumentCmd represents the batch-upload-document command
var batchUploadDocumentCmd = &cobra.Command{
	Use:   "batch-upload-document",
	Short: "Ingest every supported file in a directory for an owner",
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		ownerID, _ := cmd.Flags().GetString("owner")
		docType, _ := cmd.Flags().GetString("doc-type")
		tags, _ := cmd.Flags().GetStringArray("tags")
		backfill, _ := cmd.Flags().GetBool("backfill")

		if dir == "" || ownerID == "" {
			log.Fatal("both --dir and --owner are required")
		}

		fileService, _ := buildIngestStack()
		extractor := service.NewExtractService()

		entries, err := os.ReadDir(dir)
		if err != nil {
			log.Fatalf("Failed to read directory: %v", err)
		}

		ingested := 0
		for _, entry := range entries {
			if entry.IsDir() || !extractor.SupportedExtension(entry.Name()) {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			req := types.UploadRequest{
				DocType: docType,
				Tags:    tags,
			}
			doc, err := fileService.IngestFile(context.Background(), ownerID, req, path)
			if err != nil {
				log.Printf("Skipping %s: %v", entry.Name(), err)
				continue
			}
			fmt.Printf("Ingested %q as %s (embedded: %v)\n", doc.Title, doc.ID, doc.HasEmbedding)
			ingested++
		}
		fmt.Printf("Ingested %d document(s)\n", ingested)

		if backfill {
			filled := fileService.BackfillEmbeddings(context.Background(), ownerID)
			fmt.Printf("Backfilled %d embedding(s)\n", filled)
		}
	},
}

func init() {
	rootCmd.AddCommand(batchUploadDocumentCmd)

	batchUploadDocumentCmd.Flags().StringP("dir", "d", "", "Directory holding the files to ingest")
	batchUploadDocumentCmd.Flags().StringP("owner", "o", "", "Owner user ID the documents belong to")
	batchUploadDocumentCmd.Flags().String("doc-type", "", "Document type applied to every file")
	batchUploadDocumentCmd.Flags().StringArrayP("tags", "g", []string{}, "Tags applied to every file")
	batchUploadDocumentCmd.Flags().Bool("backfill", false, "Retry embeddings that failed during ingestion")
}
