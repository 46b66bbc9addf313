package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"edusync/internal/service"
)

// uploadSuccess mirrors the response shape the platform's clients already
// consume: flat fields plus a success flag, not the CRUD error envelope.
type uploadSuccess struct {
	Success     bool      `json:"success"`
	URL         string    `json:"url"`
	FileName    string    `json:"fileName"`
	FileSize    int64     `json:"fileSize"`
	ContentType string    `json:"contentType"`
	Timestamp   time.Time `json:"timestamp"`
	Message     string    `json:"message"`
}

type uploadError struct {
	Success   bool      `json:"success"`
	Error     string    `json:"error"`
	ErrorType string    `json:"errorType"`
	Timestamp time.Time `json:"timestamp"`
}

// writeUploadError maps the failure taxonomy to a status code: client input
// errors are 400, everything else (store rejection, transport, verification) 500.
func writeUploadError(c *fiber.Ctx, err error) error {
	errType := service.UploadErrorType(err)
	status := fiber.StatusInternalServerError
	if errType == "EmptyPayload" || errType == "PayloadTooLarge" {
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(uploadError{
		Success:   false,
		Error:     err.Error(),
		ErrorType: errType,
		Timestamp: time.Now().UTC(),
	})
}

// UploadFile handles POST /api/FileUpload (multipart/form-data, field name: file).
func UploadFile(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeUploadError(c, service.ErrEmptyFile)
		}

		f, err := fh.Open()
		if err != nil {
			return writeUploadError(c, fmt.Errorf("cannot open uploaded file: %w", err))
		}
		defer f.Close()

		res, err := svc.Upload(c.UserContext(), f, fh.Filename, fh.Size)
		if err != nil {
			return writeUploadError(c, err)
		}

		return c.JSON(uploadSuccess{
			Success:     true,
			URL:         res.URL,
			FileName:    res.FileName,
			FileSize:    res.FileSize,
			ContentType: res.ContentType,
			Timestamp:   time.Now().UTC(),
			Message:     "File uploaded successfully",
		})
	}
}

// UploadDiagnostics handles GET /api/FileUpload/diagnostics. Operational
// troubleshooting only; not part of the business contract.
func UploadDiagnostics(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		report, err := svc.Diagnostics(c.UserContext())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":     err.Error(),
				"timestamp": time.Now().UTC(),
			})
		}
		return c.JSON(fiber.Map{
			"diagnostics": report,
			"timestamp":   time.Now().UTC(),
		})
	}
}

// TestConnection handles GET /api/FileUpload/test-connection. Always 200;
// failures degrade to connected:false.
func TestConnection(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		connected := svc.TestConnection(c.UserContext())
		msg := "Connection successful"
		if !connected {
			msg = "Connection failed - check logs for details"
		}
		return c.JSON(fiber.Map{
			"connected": connected,
			"timestamp": time.Now().UTC(),
			"message":   msg,
		})
	}
}

// TestUpload handles POST /api/FileUpload/test-upload: pushes a small generated
// text file through the normal pipeline.
func TestUpload(svc service.UploadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now().UTC()
		content := fmt.Sprintf("Test file created at %s", now.Format("2006-01-02 15:04:05 MST"))
		name := fmt.Sprintf("test-%s.txt", now.Format("20060102150405"))

		res, err := svc.Upload(c.UserContext(), strings.NewReader(content), name, int64(len(content)))
		if err != nil {
			return writeUploadError(c, err)
		}
		return c.JSON(uploadSuccess{
			Success:     true,
			URL:         res.URL,
			FileName:    res.FileName,
			FileSize:    res.FileSize,
			ContentType: res.ContentType,
			Timestamp:   now,
			Message:     "Test file uploaded successfully",
		})
	}
}
