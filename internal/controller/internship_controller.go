package controller

import (
	"errors"
	"strconv"

	"lumo_backend/internal/service"
	"lumo_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type InternshipController struct {
	internshipService *service.InternshipService
	questionService   *service.QuestionService
}

func NewInternshipController(internshipService *service.InternshipService, questionService *service.QuestionService) *InternshipController {
	return &InternshipController{
		internshipService: internshipService,
		questionService:   questionService,
	}
}

// List returns internships, optionally filtered by required skill.
// @Summary List internships
// @Tags Internship
// @Produce json
// @Param skill query string false "Filter by required skill name"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response
// @Router /api/internships [get]
func (c *InternshipController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	skill := ctx.Query("skill")

	internships, total, err := c.internshipService.List(skill, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  internships,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Detail returns one internship with its recommended projects.
// @Summary Internship detail
// @Tags Internship
// @Produce json
// @Param id path int true "Internship ID"
// @Success 200 {object} util.Response
// @Router /api/internships/{id} [get]
func (c *InternshipController) Detail(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid internship id")
		return
	}

	detail, err := c.internshipService.Detail(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrInternshipNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

// Questions returns the stored question banks for an internship.
// @Summary Internship question banks
// @Tags Internship
// @Produce json
// @Param id path int true "Internship ID"
// @Success 200 {object} util.Response
// @Router /api/internships/{id}/questions [get]
func (c *InternshipController) Questions(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid internship id")
		return
	}

	bank, err := c.internshipService.Questions(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrInternshipNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, bank)
}

// GenerateQuestions triggers AI question generation for an internship.
// Admin only; repeated runs are idempotent under the natural keys.
// @Summary Generate question banks
// @Tags Internship
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Internship ID"
// @Success 200 {object} util.Response
// @Router /api/admin/internships/{id}/questions/generate [post]
func (c *InternshipController) GenerateQuestions(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid internship id")
		return
	}

	counts, err := c.questionService.GenerateAndStore(ctx.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, counts)
}
