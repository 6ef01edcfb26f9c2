package handler

import (
	"github.com/gofiber/fiber/v2"

	"glamstore/internal/service"
)

type UploadHandler struct {
	uploadService service.UploadService
}

func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Upload pins the multipart "file" field.
// POST /api/v1/upload
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "No file provided"})
	}

	file, err := header.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Failed to read file"})
	}
	defer file.Close()

	image, err := h.uploadService.Upload(c.UserContext(), header.Filename, file, c.FormValue("group_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "cid": image.CID, "name": image.Name, "url": image.URL, "mime_type": image.MimeType})
}

// DELETE /api/v1/upload/:cid
func (h *UploadHandler) Unpin(c *fiber.Ctx) error {
	if err := h.uploadService.Unpin(c.UserContext(), c.Params("cid")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
