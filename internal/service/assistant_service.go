package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"shopping-assistant-be/internal/constant"
	"shopping-assistant-be/internal/dto"
	"shopping-assistant-be/internal/entity"
	"shopping-assistant-be/internal/repository/memory"
	"shopping-assistant-be/internal/repository/specification"
	"shopping-assistant-be/internal/repository/unitofwork"
	"shopping-assistant-be/pkg/dialogue"
	"shopping-assistant-be/pkg/events"
	pktNats "shopping-assistant-be/pkg/nats"
	"shopping-assistant-be/pkg/store"

	"github.com/google/uuid"
)

type IAssistantService interface {
	CreateSession(ctx context.Context, userId uuid.UUID) (*dto.CreateSessionResponse, error)
	GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllSessionsResponse, error)
	GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error)
	SendChat(ctx context.Context, userId uuid.UUID, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	ResetSession(ctx context.Context, userId uuid.UUID, request *dto.ResetSessionRequest) error
	DeleteSession(ctx context.Context, userId uuid.UUID, request *dto.DeleteSessionRequest) error
}

// assistantService is the transactional shell around the dialogue engine: it
// owns session persistence and message history while the orchestrator owns
// conversation semantics.
type assistantService struct {
	uowFactory     unitofwork.RepositoryFactory
	sessionRepo    *memory.SessionRepository
	orchestrator   *dialogue.Orchestrator
	eventPublisher *pktNats.Publisher
	logger         *log.Logger

	// One turn per session at a time. Concurrent sends for the same session
	// serialize here so turn records never interleave.
	turnLocks sync.Map // sessionID string -> *sync.Mutex
}

func NewAssistantService(
	uowFactory unitofwork.RepositoryFactory,
	sessionRepo *memory.SessionRepository,
	orchestrator *dialogue.Orchestrator,
	eventPublisher *pktNats.Publisher,
	logger *log.Logger,
) IAssistantService {
	return &assistantService{
		uowFactory:     uowFactory,
		sessionRepo:    sessionRepo,
		orchestrator:   orchestrator,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

func (as *assistantService) CreateSession(ctx context.Context, userId uuid.UUID) (*dto.CreateSessionResponse, error) {
	uow := as.uowFactory.NewUnitOfWork(ctx)
	now := time.Now()

	chatSession := entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     constant.ChatSessionDefaultTitle,
		CreatedAt: now,
	}

	greeting := entity.ChatMessage{
		Id:            uuid.New(),
		Chat:          constant.ChatSessionGreeting,
		Role:          constant.ChatMessageRoleModel,
		ChatSessionId: chatSession.Id,
		CreatedAt:     now,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatSessionRepository().Create(ctx, &chatSession); err != nil {
		return nil, err
	}
	if err := uow.ChatMessageRepository().Create(ctx, &greeting); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	as.sessionRepo.Save(ctx, store.NewSession(chatSession.Id.String(), userId.String()))

	return &dto.CreateSessionResponse{Id: chatSession.Id}, nil
}

func (as *assistantService) GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllSessionsResponse, error) {
	uow := as.uowFactory.NewUnitOfWork(ctx)

	chatSessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.GetAllSessionsResponse, 0, len(chatSessions))
	for _, s := range chatSessions {
		response = append(response, &dto.GetAllSessionsResponse{
			Id:        s.Id,
			Title:     s.Title,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}

	return response, nil
}

func (as *assistantService) GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error) {
	uow := as.uowFactory.NewUnitOfWork(ctx)

	if _, err := as.verifySession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	chatMessages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	resp := make([]*dto.GetChatHistoryResponse, 0, len(chatMessages))
	for _, msg := range chatMessages {
		resp = append(resp, &dto.GetChatHistoryResponse{
			Id:        msg.Id,
			Role:      msg.Role,
			Chat:      msg.Chat,
			Route:     msg.Route,
			CreatedAt: msg.CreatedAt,
		})
	}

	return resp, nil
}

// SendChat runs one dialogue turn and persists both sides of the exchange.
func (as *assistantService) SendChat(ctx context.Context, userId uuid.UUID, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	sessionIdStr := request.ChatSessionId.String()

	lock := as.lockFor(sessionIdStr)
	lock.Lock()
	defer lock.Unlock()

	uow := as.uowFactory.NewUnitOfWork(ctx)

	chatSession, err := as.verifySession(ctx, uow, userId, request.ChatSessionId)
	if err != nil {
		return nil, err
	}

	sess, found := as.sessionRepo.Get(ctx, sessionIdStr)
	if !found {
		sess = store.NewSession(sessionIdStr, userId.String())
	}

	result := as.orchestrator.ProcessTurn(ctx, sess, userId, dialogue.Input{
		Text:      request.Chat,
		ImagePath: request.ImagePath,
	})

	as.sessionRepo.Save(ctx, sess)

	now := time.Now()
	userMessage := entity.ChatMessage{
		Id:            uuid.New(),
		Chat:          request.Chat,
		Role:          constant.ChatMessageRoleUser,
		Route:         string(result.Route),
		ChatSessionId: request.ChatSessionId,
		CreatedAt:     now,
	}
	modelMessage := entity.ChatMessage{
		Id:            uuid.New(),
		Chat:          result.Reply,
		Role:          constant.ChatMessageRoleModel,
		ChatSessionId: request.ChatSessionId,
		CreatedAt:     now.Add(1 * time.Second),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().Create(ctx, &userMessage); err != nil {
		return nil, err
	}
	if err := uow.ChatMessageRepository().Create(ctx, &modelMessage); err != nil {
		return nil, err
	}

	if chatSession.Title == constant.ChatSessionDefaultTitle && request.Chat != "" {
		chatSession.Title = truncateTitle(request.Chat)
		chatSession.UpdatedAt = &now
		if err := uow.ChatSessionRepository().Update(ctx, chatSession); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if as.eventPublisher != nil {
		evt := events.NewTurnCompleted(sessionIdStr, userId.String(), string(result.Route), len(result.Results), sess.ClarificationCount)
		if err := as.eventPublisher.Publish(ctx, evt); err != nil {
			as.logger.Printf("[WARN] Failed to publish turn event for session %s: %v", sessionIdStr, err)
		}
	}

	return &dto.SendChatResponse{
		ChatSessionId:      chatSession.Id,
		ChatSessionTitle:   chatSession.Title,
		Route:              string(result.Route),
		Results:            candidatesToDTO(result.Results),
		ClarificationAsked: result.ClarificationAsked,
		Sent: &dto.SendChatResponseChat{
			Id:        userMessage.Id,
			Chat:      userMessage.Chat,
			Role:      userMessage.Role,
			CreatedAt: userMessage.CreatedAt,
		},
		Reply: &dto.SendChatResponseChat{
			Id:        modelMessage.Id,
			Chat:      modelMessage.Chat,
			Role:      modelMessage.Role,
			CreatedAt: modelMessage.CreatedAt,
		},
	}, nil
}

// ResetSession drops the accumulated conversation state but keeps the stored
// message history.
func (as *assistantService) ResetSession(ctx context.Context, userId uuid.UUID, request *dto.ResetSessionRequest) error {
	uow := as.uowFactory.NewUnitOfWork(ctx)

	if _, err := as.verifySession(ctx, uow, userId, request.ChatSessionId); err != nil {
		return err
	}

	sessionIdStr := request.ChatSessionId.String()

	lock := as.lockFor(sessionIdStr)
	lock.Lock()
	defer lock.Unlock()

	sess, found := as.sessionRepo.Get(ctx, sessionIdStr)
	if !found {
		sess = store.NewSession(sessionIdStr, userId.String())
	}
	sess.Reset()
	as.sessionRepo.Save(ctx, sess)

	if as.eventPublisher != nil {
		evt := events.NewSessionReset(sessionIdStr, userId.String())
		if err := as.eventPublisher.Publish(ctx, evt); err != nil {
			as.logger.Printf("[WARN] Failed to publish reset event for session %s: %v", sessionIdStr, err)
		}
	}

	return nil
}

func (as *assistantService) DeleteSession(ctx context.Context, userId uuid.UUID, request *dto.DeleteSessionRequest) error {
	uow := as.uowFactory.NewUnitOfWork(ctx)

	if _, err := as.verifySession(ctx, uow, userId, request.ChatSessionId); err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatSessionRepository().Delete(ctx, request.ChatSessionId); err != nil {
		return err
	}
	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, request.ChatSessionId); err != nil {
		return err
	}

	as.sessionRepo.Delete(ctx, request.ChatSessionId.String())

	return uow.Commit()
}

func (as *assistantService) verifySession(ctx context.Context, uow unitofwork.UnitOfWork, userId, sessionId uuid.UUID) (*entity.ChatSession, error) {
	sess, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, fmt.Errorf("session not found or access denied")
	}
	return sess, nil
}

func (as *assistantService) lockFor(sessionID string) *sync.Mutex {
	actual, _ := as.turnLocks.LoadOrStore(sessionID, &sync.Mutex{})
	return actual.(*sync.Mutex)
}

func candidatesToDTO(candidates []store.Candidate) []dto.CandidateDTO {
	if len(candidates) == 0 {
		return nil
	}
	out := make([]dto.CandidateDTO, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, dto.CandidateDTO{
			ProductId:   c.ProductID,
			ImageId:     c.Metadata.ImageID,
			ProductType: c.Metadata.ProductType,
			Brand:       c.Metadata.Brand,
			Color:       c.Metadata.Color,
			Size:        c.Metadata.Size,
			PriceINR:    c.Metadata.PriceINR,
			Score:       c.FusedScore,
		})
	}
	return out
}

func truncateTitle(chat string) string {
	const maxTitle = 50
	runes := []rune(chat)
	if len(runes) <= maxTitle {
		return chat
	}
	return string(runes[:maxTitle]) + "..."
}
