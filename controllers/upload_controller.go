package controller

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"promocrm/config"
	"promocrm/utils"

	"github.com/chai2010/webp"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxUploadSize = 10 << 20 // 10 MB

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

type UploadController struct {
	Logger *log.Logger
}

func NewUploadController(logger *log.Logger) *UploadController {
	return &UploadController{Logger: logger}
}

// UploadImage stores an uploaded image under the configured upload dir,
// converting PNG/JPEG/GIF to WebP. Returns the public URL of the stored file.
func (uc *UploadController) UploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "No image file provided", err)
	}

	if fileHeader.Size > maxUploadSize {
		return utils.ErrorResponse(c, fiber.StatusRequestEntityTooLarge, "Image exceeds the 10MB limit", nil)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExtensions[ext] {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Unsupported image format", nil)
	}

	if err := os.MkdirAll(config.AppConfig.UploadDir, 0o755); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to prepare upload directory", err)
	}

	name := uuid.New().String()

	// WebP uploads are stored as-is; everything else is re-encoded
	if ext == ".webp" {
		dst := filepath.Join(config.AppConfig.UploadDir, name+".webp")
		if err := c.SaveFile(fileHeader, dst); err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to store image", err)
		}
		return uc.uploadedResponse(c, name+".webp")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Failed to read uploaded image", err)
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Uploaded file is not a valid image", err)
	}

	dst := filepath.Join(config.AppConfig.UploadDir, name+".webp")
	out, err := os.Create(dst)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to store image", err)
	}
	defer out.Close()

	if err := webp.Encode(out, img, &webp.Options{Quality: 85}); err != nil {
		os.Remove(dst)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to encode image", err)
	}

	utils.LogEvent("image_uploaded", map[string]interface{}{
		"original": fileHeader.Filename,
		"stored":   name + ".webp",
		"bytes":    fileHeader.Size,
	})

	return uc.uploadedResponse(c, name+".webp")
}

// DeleteImage removes a stored upload by filename
func (uc *UploadController) DeleteImage(c *fiber.Ctx) error {
	filename := c.Params("filename")

	// Reject anything that could escape the upload dir
	if filename == "" || filename != filepath.Base(filename) || strings.Contains(filename, "..") {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid filename", nil)
	}

	path := filepath.Join(config.AppConfig.UploadDir, filename)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Image not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete image", err)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"message": "Image deleted successfully",
	}))
}

func (uc *UploadController) uploadedResponse(c *fiber.Ctx, filename string) error {
	url := fmt.Sprintf("%s/%s", strings.TrimRight(config.AppConfig.UploadBaseURL, "/"), filename)
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(fiber.Map{
		"filename": filename,
		"url":      url,
	}))
}
