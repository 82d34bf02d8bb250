package handler

import (
	"github.com/gofiber/fiber/v2"

	"custodia/internal/model"
	"custodia/internal/service"
)

type uploadResponse struct {
	Mensagem string `json:"mensagem"`
	Arquivo  string `json:"arquivo"`
}

type mensagemResponse struct {
	Mensagem string `json:"mensagem"`
}

type listDocumentsResponse struct {
	CPF        string                  `json:"cpf"`
	Documentos []service.DocumentEntry `json:"documentos"`
}

// UploadDocument handles POST /api/documentos (multipart: cpf, tipo, file).
//
// @Summary Upload a document for a person
// @Accept multipart/form-data
// @Produce json
// @Param cpf formData string true "owner CPF"
// @Param tipo formData string true "document type"
// @Param file formData file true "PDF content"
// @Success 201 {object} uploadResponse
// @Failure 400 {object} errorPayload
// @Router /api/documentos [post]
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cpf := c.FormValue("cpf")
		tipo := c.FormValue("tipo")
		fh, err := c.FormFile("file")
		if cpf == "" || tipo == "" || err != nil {
			return writeError(c, fiber.StatusBadRequest, "INCOMPLETE_DATA", "cpf, tipo and file are required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		name, err := svc.Save(c.UserContext(), cpf, model.DocumentType(tipo), fh.Filename, f, fh.Size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(uploadResponse{
			Mensagem: "Documento enviado",
			Arquivo:  name,
		})
	}
}

// ListDocuments handles GET /api/documentos/:cpf. Unknown persons yield an
// empty list with status 200.
//
// @Summary List a person's documents
// @Produce json
// @Param cpf path string true "owner CPF"
// @Success 200 {object} listDocumentsResponse
// @Router /api/documentos/{cpf} [get]
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cpf := c.Params("cpf")
		entries, err := svc.List(c.UserContext(), cpf)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(listDocumentsResponse{CPF: cpf, Documentos: entries})
	}
}

// ReplaceDocument handles PUT /api/documentos/:arquivo (multipart: tipo, file).
//
// @Summary Replace a stored document
// @Accept multipart/form-data
// @Produce json
// @Param arquivo path string true "stored file name"
// @Param tipo formData string true "new document type"
// @Param file formData file true "new PDF content"
// @Success 200 {object} mensagemResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/documentos/{arquivo} [put]
func ReplaceDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		arquivo := c.Params("arquivo")
		if !model.ValidFileName(arquivo) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_NAME", "malformed file name")
		}
		tipo := c.FormValue("tipo")
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INCOMPLETE_DATA", "tipo and file are required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		if _, err := svc.Replace(c.UserContext(), arquivo, model.DocumentType(tipo), fh.Filename, f, fh.Size); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(mensagemResponse{Mensagem: "Documento atualizado com sucesso"})
	}
}

// DeleteDocument handles DELETE /api/documentos/:arquivo.
//
// @Summary Delete a stored document
// @Produce json
// @Param arquivo path string true "stored file name"
// @Success 200 {object} mensagemResponse
// @Failure 404 {object} errorPayload
// @Router /api/documentos/{arquivo} [delete]
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		arquivo := c.Params("arquivo")
		if !model.ValidFileName(arquivo) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_NAME", "malformed file name")
		}
		if err := svc.Delete(c.UserContext(), arquivo); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(mensagemResponse{Mensagem: "Documento excluído"})
	}
}

// DownloadDocument handles GET /api/arquivos/:arquivo and streams the live
// file content.
//
// @Summary Download a stored document
// @Produce application/pdf
// @Param arquivo path string true "stored file name"
// @Success 200 {file} binary
// @Failure 404 {object} errorPayload
// @Router /api/arquivos/{arquivo} [get]
func DownloadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		arquivo := c.Params("arquivo")
		if !model.ValidFileName(arquivo) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_NAME", "malformed file name")
		}
		rc, err := svc.Download(c.UserContext(), arquivo)
		if err != nil {
			return writeServiceError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		return c.SendStream(rc)
	}
}
