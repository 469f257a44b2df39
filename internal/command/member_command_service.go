package command

import (
	"context"
	"fmt"
	"log"

	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/cqrs"
	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/events"
	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/models"
	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/repository"
	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/utils"
)

// MemberCommandService writes member state to PostgreSQL and keeps the Redis
// read model warm.
type MemberCommandService struct {
	writeRepo *repository.MemberWriteRepository
	readRepo  *repository.MemberReadRepository
	publisher *events.Publisher
}

func NewMemberCommandService(
	writeRepo *repository.MemberWriteRepository,
	readRepo *repository.MemberReadRepository,
	publisher *events.Publisher,
) *MemberCommandService {
	return &MemberCommandService{
		writeRepo: writeRepo,
		readRepo:  readRepo,
		publisher: publisher,
	}
}

// RegisterMember creates a new member. The pre-check keeps the common
// duplicate case off the unique index; the index itself still backstops
// concurrent registrations.
func (s *MemberCommandService) RegisterMember(cmd cqrs.RegisterMemberCommand) (*models.Member, error) {
	exists, err := s.writeRepo.Exists(cmd.MemberID, cmd.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("member already exists")
	}

	passwordHash, err := utils.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	member := &models.Member{
		MemberID:     cmd.MemberID,
		FirstName:    cmd.FirstName,
		LastName:     cmd.LastName,
		Email:        cmd.Email,
		Telephone:    cmd.Telephone,
		PasswordHash: passwordHash,
	}
	if err := s.writeRepo.Create(member); err != nil {
		return nil, err
	}

	ctx := context.Background()
	s.readRepo.CacheMemberView(ctx, &models.MemberView{
		MemberID:  member.MemberID,
		FirstName: member.FirstName,
		LastName:  member.LastName,
		Email:     member.Email,
	})

	if err := s.publisher.Publish(ctx, events.MemberEventsStream, events.MemberRegistered, events.MemberRegisteredEvent{
		MemberID:  member.MemberID,
		Email:     member.Email,
		FirstName: member.FirstName,
		LastName:  member.LastName,
	}); err != nil {
		log.Printf("Failed to publish member.registered event: %v", err)
	}

	return member, nil
}
