package query

import (
	"fmt"

	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/cqrs"
	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/models"
	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/repository"
	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/token"
	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/utils"
)

// AuthQueryService handles login. There's no CommandService counterpart for
// login because authenticating doesn't mutate application state.
type AuthQueryService struct {
	memberRepo *repository.MemberWriteRepository
	tokens     *token.Service
}

func NewAuthQueryService(memberRepo *repository.MemberWriteRepository, tokens *token.Service) *AuthQueryService {
	return &AuthQueryService{memberRepo: memberRepo, tokens: tokens}
}

// Login resolves the identifier (member ID or email), checks the password
// and issues a bearer token. Unknown member and wrong password collapse into
// the same error so login can't be used to probe for registered identifiers.
func (s *AuthQueryService) Login(cmd cqrs.LoginCommand) (string, *models.MemberView, error) {
	member, err := s.memberRepo.GetByIdentifier(cmd.Identifier)
	if err != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}
	if !utils.CheckPassword(cmd.Password, member.PasswordHash) {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	signed, err := s.tokens.Issue(member.MemberID, member.Email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return signed, &models.MemberView{
		MemberID:  member.MemberID,
		FirstName: member.FirstName,
		LastName:  member.LastName,
		Email:     member.Email,
	}, nil
}
