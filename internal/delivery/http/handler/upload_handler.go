package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"dental-clinic/internal/service"
	"dental-clinic/internal/usecase"
	"dental-clinic/pkg/response"
)

const (
	maxUploadFiles = 10
	// multipart overhead on top of the file bytes
	maxUploadBody = maxUploadFiles*usecase.MaxUploadSize + 1<<20
)

type UploadHandler struct {
	visitUsecase   usecase.VisitUsecase
	settingUsecase usecase.SettingUsecase
}

func NewUploadHandler(visitUsecase usecase.VisitUsecase, settingUsecase usecase.SettingUsecase) *UploadHandler {
	return &UploadHandler{
		visitUsecase:   visitUsecase,
		settingUsecase: settingUsecase,
	}
}

// PatientAttachment handles a single "file" part plus a "visitId" field.
func (h *UploadHandler) PatientAttachment(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, "file")
}

// Media handles up to ten "files" parts plus a "visitId" field.
func (h *UploadHandler) Media(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, "files")
}

func (h *UploadHandler) upload(w http.ResponseWriter, r *http.Request, field string) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.Error(w, http.StatusRequestEntityTooLarge, "Upload is too large", nil)
			return
		}
		response.BadRequest(w, "Invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	visitID, err := strconv.Atoi(r.FormValue("visitId"))
	if err != nil || visitID <= 0 {
		response.BadRequest(w, "Visit ID is required")
		return
	}

	headers := r.MultipartForm.File[field]
	if len(headers) > maxUploadFiles {
		response.BadRequest(w, "Too many files, at most 10 per upload")
		return
	}

	files := make([]usecase.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		data, err := readPart(fh)
		if err != nil {
			response.BadRequest(w, "Failed to read uploaded file")
			return
		}
		files = append(files, usecase.UploadedFile{Name: fh.Filename, Data: data})
	}

	attachments, err := h.visitUsecase.AddAttachments(r.Context(), visitID, files)
	if err != nil {
		switch err {
		case usecase.ErrVisitNotFound:
			response.NotFound(w, "Visit not found")
		case usecase.ErrNoFiles:
			response.BadRequest(w, "No files uploaded")
		case usecase.ErrFileTooLarge:
			response.Error(w, http.StatusRequestEntityTooLarge, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to upload files")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Files uploaded successfully", attachments)
}

// Logo handles a "logo" part and stores it in the clinic_info setting.
func (h *UploadHandler) Logo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, usecase.MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["logo"]
	if len(headers) == 0 {
		response.BadRequest(w, "No file uploaded")
		return
	}

	data, err := readPart(headers[0])
	if err != nil {
		response.BadRequest(w, "Failed to read uploaded file")
		return
	}
	if len(data) > usecase.MaxUploadSize {
		response.Error(w, http.StatusRequestEntityTooLarge, usecase.ErrFileTooLarge.Error(), nil)
		return
	}

	setting, err := h.settingUsecase.UploadLogo(r.Context(), data)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedImage) {
			response.BadRequest(w, service.ErrUnsupportedImage.Error())
			return
		}
		response.InternalServerError(w, "Failed to upload logo")
		return
	}

	response.Success(w, http.StatusOK, "Logo uploaded successfully", setting)
}

// readPart reads at most one byte past the upload limit so oversize files
// are still detected without buffering them whole.
func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(io.LimitReader(f, usecase.MaxUploadSize+1))
}
