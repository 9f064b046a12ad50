package cli

import (
	"fmt"

	"github.com/avdeyev/classpack/internal/models"
)

// parseEntityType accepts the singular and plural command-line spellings.
func parseEntityType(arg string) (models.EntityType, error) {
	switch arg {
	case "file", "files":
		return models.EntityTypeFile, nil
	case "link", "links":
		return models.EntityTypeLink, nil
	case "worksheet", "worksheets":
		return models.EntityTypeWorksheet, nil
	case "quiz", "quizzes":
		return models.EntityTypeQuiz, nil
	case "folder", "folders":
		return models.EntityTypeFolder, nil
	case "document", "documents", "doc", "docs":
		return models.EntityTypeDocument, nil
	default:
		return "", fmt.Errorf("unknown type: %s. Use: file, link, worksheet, quiz, folder, or document", arg)
	}
}
