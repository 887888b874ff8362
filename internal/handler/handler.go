package handler

import (
	"sync"
	"time"

	"lexideck/internal/deckscreen"
	"lexideck/internal/domain"
	"lexideck/internal/service"
	"lexideck/internal/study"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot         *tele.Bot
	authService *service.AuthService
	deckService *service.DeckService
	gameService *service.GameService
	logger      *zap.Logger
	now         func() time.Time

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	// Open deck screens and study sessions
	screens    map[int64]*deckscreen.Screen
	studies    map[int64]study.Session
	sessionMux sync.Mutex

	// Per-user locks, updates are handled concurrently
	callbackLocks map[int64]*sync.Mutex
	callbackMux   sync.Mutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	deckService *service.DeckService,
	gameService *service.GameService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:           bot,
		authService:   authService,
		deckService:   deckService,
		gameService:   gameService,
		logger:        logger,
		now:           time.Now,
		states:        make(map[int64]*domain.StateData),
		screens:       make(map[int64]*deckscreen.Screen),
		studies:       make(map[int64]study.Session),
		callbackLocks: make(map[int64]*sync.Mutex),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.locked(h.handleStart))
	h.bot.Handle("/decks", h.locked(h.handleDecks))
	h.bot.Handle("/play", h.locked(h.handleWordBuilder))

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// All inline buttons are routed by data
	h.bot.Handle(tele.OnCallback, h.handleCallback)

	h.gameService.OnTimeUp(h.notifyTimeUp)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// lockUser serializes updates of one user and returns the unlock func
func (h *Handler) lockUser(userID int64) func() {
	h.callbackMux.Lock()
	lock, exists := h.callbackLocks[userID]
	if !exists {
		lock = &sync.Mutex{}
		h.callbackLocks[userID] = lock
	}
	h.callbackMux.Unlock()

	lock.Lock()
	return lock.Unlock
}

// locked wraps a handler with the sender's lock
func (h *Handler) locked(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		unlock := h.lockUser(c.Sender().ID)
		defer unlock()
		return next(c)
	}
}

func (h *Handler) screen(userID int64) *deckscreen.Screen {
	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()
	return h.screens[userID]
}

func (h *Handler) setScreen(userID int64, s *deckscreen.Screen) {
	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()
	h.screens[userID] = s
	delete(h.studies, userID)
}

// closeDeck forgets the open deck screen and any study session on it
func (h *Handler) closeDeck(userID int64) {
	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()
	delete(h.screens, userID)
	delete(h.studies, userID)
}

func (h *Handler) studySession(userID int64) study.Session {
	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()
	return h.studies[userID]
}

func (h *Handler) setStudySession(userID int64, s study.Session) {
	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()
	if s == nil {
		delete(h.studies, userID)
		return
	}
	h.studies[userID] = s
}

// Inline keyboard buttons
var (
	btnDecks = tele.Btn{
		Unique: "decks",
		Text:   "📚 Decks",
	}
	btnWordBuilder = tele.Btn{
		Unique: "word_builder",
		Text:   "🧩 Word Builder",
	}
	btnNewDeck = tele.Btn{
		Unique: "new_deck",
		Text:   "➕ New deck",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main menu",
	}
	btnBackToDeck = tele.Btn{
		Unique: "deck_view",
		Text:   "◀️ Back to deck",
	}
	btnAddCard = tele.Btn{
		Unique: "add_card",
		Text:   "➕ Add card",
	}
	btnStudy = tele.Btn{
		Unique: "study",
		Text:   "🎓 Study",
	}
	btnDeleteDeck = tele.Btn{
		Unique: "delete_deck",
		Text:   "🗑 Delete deck",
	}
	btnConfirmDelete = tele.Btn{
		Unique: "delete_deck_yes",
		Text:   "🗑 Yes, delete",
	}
	btnCancelSheet = tele.Btn{
		Unique: "sheet_cancel",
		Text:   "❌ Cancel",
	}
	btnEndStudy = tele.Btn{
		Unique: "study_end",
		Text:   "🏁 Finish",
	}
	btnFlip = tele.Btn{
		Unique: "study_flip",
		Text:   "🔄 Flip",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnDecks),
		menu.Row(btnWordBuilder),
	)
	return menu
}

func cancelMarkup(btn tele.Btn) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btn))
	return markup
}
