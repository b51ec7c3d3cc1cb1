package http

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/refhub/internal/audit"
	"github.com/mrlokans/refhub/internal/conversion"
	"github.com/mrlokans/refhub/internal/entities"
	"github.com/mrlokans/refhub/internal/utils"
)

const (
	msgMissingContent    = "Provide XML or RIS content for conversion"
	msgConversionFailed  = "Unable to complete conversion"
	msgNoEntries         = "No references could be converted"
	referenceUploadField = "reference_file"
	bibtexContentType    = "text/x-bibtex; charset=utf-8"
)

// ConvertRequest is the JSON body accepted by the convert and download endpoints.
// Absent options, or absent keys inside options, take their default values.
type ConvertRequest struct {
	Content  string                      `json:"content"`
	Options  *entities.ConversionOptions `json:"options"`
	FileName string                      `json:"fileName"`
}

func (r ConvertRequest) options() entities.ConversionOptions {
	if r.Options == nil {
		return entities.DefaultOptions()
	}
	return *r.Options
}

type ConvertController struct {
	converter       Converter
	jobLogger       ConversionLogger
	auditor         *audit.Auditor
	maxContentBytes int64
}

func NewConvertController(converter Converter, jobLogger ConversionLogger, auditor *audit.Auditor, maxContentBytes int64) *ConvertController {
	return &ConvertController{
		converter:       converter,
		jobLogger:       jobLogger,
		auditor:         auditor,
		maxContentBytes: maxContentBytes,
	}
}

// Convert handles POST /api/tools/ref/convert
func (c *ConvertController) Convert(ctx *gin.Context) {
	req, ok := c.bindRequest(ctx)
	if !ok {
		return
	}

	result, ok := c.run(ctx, req)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// Upload handles POST /api/tools/ref/convert/upload
// Accepts a multipart form with the export in reference_file and options as
// individual form fields.
func (c *ConvertController) Upload(ctx *gin.Context) {
	file, header, err := ctx.Request.FormFile(referenceUploadField)
	if err != nil {
		if isBodyTooLarge(err) {
			respondBadRequest(ctx, c.tooLargeMessage())
			return
		}
		respondBadRequest(ctx, "Reference file not provided")
		return
	}
	defer file.Close()

	if c.maxContentBytes > 0 && header.Size > c.maxContentBytes {
		respondBadRequest(ctx, c.tooLargeMessage())
		return
	}

	var reader io.Reader = file
	if c.maxContentBytes > 0 {
		reader = io.LimitReader(file, c.maxContentBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		respondBadRequest(ctx, fmt.Sprintf("Failed to read uploaded file: %v", err))
		return
	}

	opts, err := parseFormOptions(ctx)
	if err != nil {
		respondBadRequest(ctx, err.Error())
		return
	}

	result, ok := c.run(ctx, ConvertRequest{
		Content:  string(data),
		Options:  &opts,
		FileName: header.Filename,
	})
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// Download handles POST /api/tools/ref/download
// Runs the conversion and returns the BibTeX as a .bib attachment.
func (c *ConvertController) Download(ctx *gin.Context) {
	req, ok := c.bindRequest(ctx)
	if !ok {
		return
	}

	result, ok := c.run(ctx, req)
	if !ok {
		return
	}

	if result.EntryCount == 0 {
		ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   msgNoEntries,
			Details: result.Warnings,
		})
		return
	}

	filename := utils.BibFilename(req.FileName)
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Header("X-Entry-Count", strconv.Itoa(result.EntryCount))
	ctx.Data(http.StatusOK, bibtexContentType, []byte(result.BibTeX+"\n"))
}

func (c *ConvertController) bindRequest(ctx *gin.Context) (ConvertRequest, bool) {
	var req ConvertRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		if isBodyTooLarge(err) {
			respondBadRequest(ctx, c.tooLargeMessage())
			return ConvertRequest{}, false
		}
		respondBadRequest(ctx, msgMissingContent)
		return ConvertRequest{}, false
	}
	return req, true
}

// run validates the request, converts it and logs one job. It writes the
// error response itself and reports false when the caller should stop.
func (c *ConvertController) run(ctx *gin.Context, req ConvertRequest) (conversion.Result, bool) {
	if err := conversion.ValidateContent(req.Content, c.maxContentBytes); err != nil {
		if errors.Is(err, conversion.ErrContentTooLarge) {
			respondBadRequest(ctx, c.tooLargeMessage())
		} else {
			respondBadRequest(ctx, msgMissingContent)
		}
		return conversion.Result{}, false
	}

	opts := req.options()
	if err := opts.Validate(); err != nil {
		respondBadRequest(ctx, err.Error())
		return conversion.Result{}, false
	}

	c.snapshot(req)

	start := time.Now()
	result, err := c.converter.Convert(req.Content, opts)
	if err != nil {
		result.Format = conversion.DetectFormat(req.Content)
	}

	if c.jobLogger != nil {
		c.jobLogger.LogConversion(audit.ConversionRecord{
			SourceName: req.FileName,
			SourceSize: len(req.Content),
			Options:    opts,
			Result:     result,
			Duration:   time.Since(start),
			Err:        err,
		})
	}

	if err != nil {
		log.Printf("Conversion API error: %v", err)
		respondError(ctx, http.StatusInternalServerError, msgConversionFailed)
		return conversion.Result{}, false
	}

	return result, true
}

func (c *ConvertController) snapshot(req ConvertRequest) {
	if !c.auditor.Enabled() {
		return
	}
	if _, err := c.auditor.SaveJSON("convert-request", req); err != nil {
		log.Printf("[AUDIT] Failed to save conversion request: %v", err)
	}
}

func (c *ConvertController) tooLargeMessage() string {
	return fmt.Sprintf("Content exceeds the maximum size of %d bytes", c.maxContentBytes)
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// parseFormOptions reads conversion options from multipart form fields,
// starting from the defaults.
func parseFormOptions(ctx *gin.Context) (entities.ConversionOptions, error) {
	opts := entities.DefaultOptions()

	flags := []struct {
		name string
		dst  *bool
	}{
		{"includeAbstract", &opts.IncludeAbstract},
		{"includeKeywords", &opts.IncludeKeywords},
		{"includeNotes", &opts.IncludeNotes},
		{"escapeLatex", &opts.EscapeLatex},
		{"preserveFormatting", &opts.PreserveFormatting},
		{"suppressWarnings", &opts.SuppressWarnings},
	}
	for _, flag := range flags {
		raw := ctx.PostForm(flag.name)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, fmt.Errorf("invalid %s: %q", flag.name, raw)
		}
		*flag.dst = value
	}

	if style := ctx.PostForm("citationStyle"); style != "" {
		opts.CitationStyle = entities.CitationStyle(style)
	}
	if custom := ctx.PostFormArray("customFields"); len(custom) > 0 {
		opts.CustomFields = custom
	}

	return opts, nil
}
