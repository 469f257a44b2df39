package handler

import (
	"net/http"

	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/cqrs"
	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/middleware"
	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/models"
	"github.com/gin-gonic/gin"
)

// AuthQuerier defines the read-side operations used by AuthHandler.
type AuthQuerier interface {
	Login(cqrs.LoginCommand) (string, *models.MemberView, error)
}

// MemberCommander defines the write-side operations used by AuthHandler.
type MemberCommander interface {
	RegisterMember(cqrs.RegisterMemberCommand) (*models.Member, error)
}

// AuthHandler handles login, registration and token verification.
type AuthHandler struct {
	queries  AuthQuerier
	commands MemberCommander
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	MemberID  string `json:"csm_memberID" validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Telephone string `json:"telephone"`
	Password  string `json:"password" validate:"required,min=6"`
}

type LoginData struct {
	Token  string             `json:"token"`
	Member *models.MemberView `json:"member"`
}

// RegisteredMember is the created-member shape returned by /auth/register.
// It carries the internal id on top of the MemberView fields and never the
// credential.
type RegisteredMember struct {
	ID        int64  `json:"id"`
	MemberID  string `json:"csm_memberID"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func NewAuthHandler(queries AuthQuerier, commands MemberCommander) *AuthHandler {
	return &AuthHandler{queries: queries, commands: commands}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	tok, member, err := h.queries.Login(cqrs.LoginCommand{
		Identifier: req.Identifier,
		Password:   req.Password,
	})
	if err != nil {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	middleware.RespondWithMessage(c, http.StatusOK, "Login successful", LoginData{
		Token:  tok,
		Member: member,
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	member, err := h.commands.RegisterMember(cqrs.RegisterMemberCommand{
		MemberID:  req.MemberID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Telephone: req.Telephone,
		Password:  req.Password,
	})
	if err != nil {
		if err.Error() == "member already exists" {
			middleware.RespondWithError(c, http.StatusBadRequest, "Member already exists")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	middleware.RespondWithMessage(c, http.StatusCreated, "Member registered successfully", gin.H{
		"member": RegisteredMember{
			ID:        member.ID,
			MemberID:  member.MemberID,
			FirstName: member.FirstName,
			LastName:  member.LastName,
			Email:     member.Email,
		},
	})
}

// Verify runs behind the auth middleware; reaching it means the token is
// valid and the member still exists.
func (h *AuthHandler) Verify(c *gin.Context) {
	member, ok := middleware.GetMember(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "Invalid token")
		return
	}
	middleware.RespondWithData(c, http.StatusOK, gin.H{"member": member})
}
