package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"gift-service/internal/assist"
	"gift-service/internal/models"
	"gift-service/internal/places"
	"gift-service/internal/repositories"
	"gift-service/internal/storage"
)

type GiftRepositoryMock struct {
	mock.Mock
}

func (m *GiftRepositoryMock) CreateGift(ctx context.Context, gift models.Gift) (models.Gift, error) {
	args := m.Called(ctx, gift)
	var out models.Gift
	if val := args.Get(0); val != nil {
		out = val.(models.Gift)
	}
	return out, args.Error(1)
}

func (m *GiftRepositoryMock) GetGift(ctx context.Context, giftID int) (models.Gift, error) {
	args := m.Called(ctx, giftID)
	var out models.Gift
	if val := args.Get(0); val != nil {
		out = val.(models.Gift)
	}
	return out, args.Error(1)
}

func (m *GiftRepositoryMock) ListSentPending(ctx context.Context, senderID int) ([]models.Gift, error) {
	args := m.Called(ctx, senderID)
	var out []models.Gift
	if val := args.Get(0); val != nil {
		out = val.([]models.Gift)
	}
	return out, args.Error(1)
}

func (m *GiftRepositoryMock) ListReceivedPending(ctx context.Context, receiverID int) ([]models.Gift, error) {
	args := m.Called(ctx, receiverID)
	var out []models.Gift
	if val := args.Get(0); val != nil {
		out = val.([]models.Gift)
	}
	return out, args.Error(1)
}

func (m *GiftRepositoryMock) MarkOpened(ctx context.Context, giftID int) (models.Gift, bool, error) {
	args := m.Called(ctx, giftID)
	var out models.Gift
	if val := args.Get(0); val != nil {
		out = val.(models.Gift)
	}
	return out, args.Bool(1), args.Error(2)
}

func (m *GiftRepositoryMock) Unsend(ctx context.Context, giftID int, senderID int) (models.Gift, bool, error) {
	args := m.Called(ctx, giftID, senderID)
	var out models.Gift
	if val := args.Get(0); val != nil {
		out = val.(models.Gift)
	}
	return out, args.Bool(1), args.Error(2)
}

type BasketRepositoryMock struct {
	mock.Mock
}

func (m *BasketRepositoryMock) UpsertItem(ctx context.Context, item models.BasketItem) (models.BasketItem, error) {
	args := m.Called(ctx, item)
	var out models.BasketItem
	if val := args.Get(0); val != nil {
		out = val.(models.BasketItem)
	}
	return out, args.Error(1)
}

func (m *BasketRepositoryMock) ListSession(ctx context.Context, sessionID string) ([]models.BasketItem, error) {
	args := m.Called(ctx, sessionID)
	var out []models.BasketItem
	if val := args.Get(0); val != nil {
		out = val.([]models.BasketItem)
	}
	return out, args.Error(1)
}

func (m *BasketRepositoryMock) CountSession(ctx context.Context, sessionID string) (int, error) {
	args := m.Called(ctx, sessionID)
	return args.Int(0), args.Error(1)
}

func (m *BasketRepositoryMock) GetItem(ctx context.Context, itemID int) (models.BasketItem, error) {
	args := m.Called(ctx, itemID)
	var out models.BasketItem
	if val := args.Get(0); val != nil {
		out = val.(models.BasketItem)
	}
	return out, args.Error(1)
}

func (m *BasketRepositoryMock) DeleteItem(ctx context.Context, sessionID string, itemID int) error {
	args := m.Called(ctx, sessionID, itemID)
	return args.Error(0)
}

type CollabGiftRepositoryMock struct {
	mock.Mock
}

func (m *CollabGiftRepositoryMock) CreateCollabGift(ctx context.Context, gift models.CollaborativeGift) (models.CollaborativeGift, error) {
	args := m.Called(ctx, gift)
	var out models.CollaborativeGift
	if val := args.Get(0); val != nil {
		out = val.(models.CollaborativeGift)
	}
	return out, args.Error(1)
}

func (m *CollabGiftRepositoryMock) GetCollabGift(ctx context.Context, giftID int) (models.CollaborativeGift, error) {
	args := m.Called(ctx, giftID)
	var out models.CollaborativeGift
	if val := args.Get(0); val != nil {
		out = val.(models.CollaborativeGift)
	}
	return out, args.Error(1)
}

func (m *CollabGiftRepositoryMock) ListSentPending(ctx context.Context, senderID int) ([]models.CollaborativeGift, error) {
	args := m.Called(ctx, senderID)
	var out []models.CollaborativeGift
	if val := args.Get(0); val != nil {
		out = val.([]models.CollaborativeGift)
	}
	return out, args.Error(1)
}

func (m *CollabGiftRepositoryMock) ListReceivedPending(ctx context.Context, receiverID int) ([]models.CollaborativeGift, error) {
	args := m.Called(ctx, receiverID)
	var out []models.CollaborativeGift
	if val := args.Get(0); val != nil {
		out = val.([]models.CollaborativeGift)
	}
	return out, args.Error(1)
}

func (m *CollabGiftRepositoryMock) MarkOpened(ctx context.Context, giftID int) (models.CollaborativeGift, bool, error) {
	args := m.Called(ctx, giftID)
	var out models.CollaborativeGift
	if val := args.Get(0); val != nil {
		out = val.(models.CollaborativeGift)
	}
	return out, args.Bool(1), args.Error(2)
}

func (m *CollabGiftRepositoryMock) Unsend(ctx context.Context, giftID int) (models.CollaborativeGift, bool, error) {
	args := m.Called(ctx, giftID)
	var out models.CollaborativeGift
	if val := args.Get(0); val != nil {
		out = val.(models.CollaborativeGift)
	}
	return out, args.Bool(1), args.Error(2)
}

type DraftRepositoryMock struct {
	mock.Mock
}

func (m *DraftRepositoryMock) CreateDraft(ctx context.Context, draft models.GiftDraft) (models.GiftDraft, error) {
	args := m.Called(ctx, draft)
	var out models.GiftDraft
	if val := args.Get(0); val != nil {
		out = val.(models.GiftDraft)
	}
	return out, args.Error(1)
}

func (m *DraftRepositoryMock) GetDraft(ctx context.Context, draftID int) (models.GiftDraft, error) {
	args := m.Called(ctx, draftID)
	var out models.GiftDraft
	if val := args.Get(0); val != nil {
		out = val.(models.GiftDraft)
	}
	return out, args.Error(1)
}

func (m *DraftRepositoryMock) ListDrafts(ctx context.Context, senderID int) ([]models.GiftDraft, error) {
	args := m.Called(ctx, senderID)
	var out []models.GiftDraft
	if val := args.Get(0); val != nil {
		out = val.([]models.GiftDraft)
	}
	return out, args.Error(1)
}

func (m *DraftRepositoryMock) UpdateDraft(ctx context.Context, draft models.GiftDraft) (models.GiftDraft, error) {
	args := m.Called(ctx, draft)
	var out models.GiftDraft
	if val := args.Get(0); val != nil {
		out = val.(models.GiftDraft)
	}
	return out, args.Error(1)
}

func (m *DraftRepositoryMock) DeleteDraft(ctx context.Context, draftID int, senderID int) error {
	args := m.Called(ctx, draftID, senderID)
	return args.Error(0)
}

func (m *DraftRepositoryMock) CreateCollabDraft(ctx context.Context, draft models.GiftDraftCollab) (models.GiftDraftCollab, error) {
	args := m.Called(ctx, draft)
	var out models.GiftDraftCollab
	if val := args.Get(0); val != nil {
		out = val.(models.GiftDraftCollab)
	}
	return out, args.Error(1)
}

func (m *DraftRepositoryMock) GetCollabDraft(ctx context.Context, draftID int) (models.GiftDraftCollab, error) {
	args := m.Called(ctx, draftID)
	var out models.GiftDraftCollab
	if val := args.Get(0); val != nil {
		out = val.(models.GiftDraftCollab)
	}
	return out, args.Error(1)
}

func (m *DraftRepositoryMock) ListCollabDrafts(ctx context.Context, senderID int) ([]models.GiftDraftCollab, error) {
	args := m.Called(ctx, senderID)
	var out []models.GiftDraftCollab
	if val := args.Get(0); val != nil {
		out = val.([]models.GiftDraftCollab)
	}
	return out, args.Error(1)
}

func (m *DraftRepositoryMock) UpdateCollabDraft(ctx context.Context, draft models.GiftDraftCollab) (models.GiftDraftCollab, error) {
	args := m.Called(ctx, draft)
	var out models.GiftDraftCollab
	if val := args.Get(0); val != nil {
		out = val.(models.GiftDraftCollab)
	}
	return out, args.Error(1)
}

func (m *DraftRepositoryMock) DeleteCollabDraft(ctx context.Context, draftID int, senderID int) error {
	args := m.Called(ctx, draftID, senderID)
	return args.Error(0)
}

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) CreateUser(ctx context.Context, username string) (models.User, error) {
	args := m.Called(ctx, username)
	var out models.User
	if val := args.Get(0); val != nil {
		out = val.(models.User)
	}
	return out, args.Error(1)
}

func (m *UserRepositoryMock) GetUser(ctx context.Context, userID int) (models.User, error) {
	args := m.Called(ctx, userID)
	var out models.User
	if val := args.Get(0); val != nil {
		out = val.(models.User)
	}
	return out, args.Error(1)
}

func (m *UserRepositoryMock) GetUsersByIDs(ctx context.Context, ids []int) ([]models.User, error) {
	args := m.Called(ctx, ids)
	var out []models.User
	if val := args.Get(0); val != nil {
		out = val.([]models.User)
	}
	return out, args.Error(1)
}

func (m *UserRepositoryMock) ListFriends(ctx context.Context, userID int) ([]models.User, error) {
	args := m.Called(ctx, userID)
	var out []models.User
	if val := args.Get(0); val != nil {
		out = val.([]models.User)
	}
	return out, args.Error(1)
}

func (m *UserRepositoryMock) UpdatePresence(ctx context.Context, userID int, lat, lon *float64, address string, status models.UserStatus) (models.User, error) {
	args := m.Called(ctx, userID, lat, lon, address, status)
	var out models.User
	if val := args.Get(0); val != nil {
		out = val.(models.User)
	}
	return out, args.Error(1)
}

func (m *UserRepositoryMock) UpdateFavorites(ctx context.Context, userID int, favorites models.FavoriteLocations) (models.User, error) {
	args := m.Called(ctx, userID, favorites)
	var out models.User
	if val := args.Get(0); val != nil {
		out = val.(models.User)
	}
	return out, args.Error(1)
}

type NudgeRepositoryMock struct {
	mock.Mock
}

func (m *NudgeRepositoryMock) CreateNudge(ctx context.Context, senderID, receiverID int) (models.Nudge, error) {
	args := m.Called(ctx, senderID, receiverID)
	var out models.Nudge
	if val := args.Get(0); val != nil {
		out = val.(models.Nudge)
	}
	return out, args.Error(1)
}

func (m *NudgeRepositoryMock) GetNudge(ctx context.Context, nudgeID int) (models.Nudge, error) {
	args := m.Called(ctx, nudgeID)
	var out models.Nudge
	if val := args.Get(0); val != nil {
		out = val.(models.Nudge)
	}
	return out, args.Error(1)
}

func (m *NudgeRepositoryMock) ListReceived(ctx context.Context, receiverID int) ([]models.Nudge, error) {
	args := m.Called(ctx, receiverID)
	var out []models.Nudge
	if val := args.Get(0); val != nil {
		out = val.([]models.Nudge)
	}
	return out, args.Error(1)
}

func (m *NudgeRepositoryMock) MarkSeen(ctx context.Context, nudgeID int, receiverID int) (models.Nudge, bool, error) {
	args := m.Called(ctx, nudgeID, receiverID)
	var out models.Nudge
	if val := args.Get(0); val != nil {
		out = val.(models.Nudge)
	}
	return out, args.Bool(1), args.Error(2)
}

func (m *NudgeRepositoryMock) Undo(ctx context.Context, nudgeID int, senderID int) (models.Nudge, bool, error) {
	args := m.Called(ctx, nudgeID, senderID)
	var out models.Nudge
	if val := args.Get(0); val != nil {
		out = val.(models.Nudge)
	}
	return out, args.Bool(1), args.Error(2)
}

type InviteRepositoryMock struct {
	mock.Mock
}

func (m *InviteRepositoryMock) CreateInvite(ctx context.Context, sessionID string, hostID, receiverID int) (models.Invite, error) {
	args := m.Called(ctx, sessionID, hostID, receiverID)
	var out models.Invite
	if val := args.Get(0); val != nil {
		out = val.(models.Invite)
	}
	return out, args.Error(1)
}

func (m *InviteRepositoryMock) GetInvite(ctx context.Context, inviteID int) (models.Invite, error) {
	args := m.Called(ctx, inviteID)
	var out models.Invite
	if val := args.Get(0); val != nil {
		out = val.(models.Invite)
	}
	return out, args.Error(1)
}

func (m *InviteRepositoryMock) ListReceived(ctx context.Context, receiverID int) ([]models.Invite, error) {
	args := m.Called(ctx, receiverID)
	var out []models.Invite
	if val := args.Get(0); val != nil {
		out = val.([]models.Invite)
	}
	return out, args.Error(1)
}

func (m *InviteRepositoryMock) Respond(ctx context.Context, inviteID int, receiverID int, status models.InviteStatus) (models.Invite, bool, error) {
	args := m.Called(ctx, inviteID, receiverID, status)
	var out models.Invite
	if val := args.Get(0); val != nil {
		out = val.(models.Invite)
	}
	return out, args.Bool(1), args.Error(2)
}

type AudioStoreMock struct {
	mock.Mock
}

func (m *AudioStoreMock) SaveRecording(ctx context.Context, userID int, r io.Reader) (string, string, error) {
	args := m.Called(ctx, userID, r)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *AudioStoreMock) SignedURL(objectPath string) (string, error) {
	args := m.Called(objectPath)
	return args.String(0), args.Error(1)
}

type AssistClientMock struct {
	mock.Mock
}

func (m *AssistClientMock) GeneratePrompts(ctx context.Context, receiverName string, occasion string) ([]string, error) {
	args := m.Called(ctx, receiverName, occasion)
	var out []string
	if val := args.Get(0); val != nil {
		out = val.([]string)
	}
	return out, args.Error(1)
}

func (m *AssistClientMock) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	args := m.Called(ctx, filename, audio)
	return args.String(0), args.Error(1)
}

type PlacesClientMock struct {
	mock.Mock
}

func (m *PlacesClientMock) Nearby(ctx context.Context, lat, lon float64, keyword string, radiusMeters uint) ([]places.Place, error) {
	args := m.Called(ctx, lat, lon, keyword, radiusMeters)
	var out []places.Place
	if val := args.Get(0); val != nil {
		out = val.([]places.Place)
	}
	return out, args.Error(1)
}

func (m *PlacesClientMock) Details(ctx context.Context, placeID string) (places.Place, error) {
	args := m.Called(ctx, placeID)
	var out places.Place
	if val := args.Get(0); val != nil {
		out = val.(places.Place)
	}
	return out, args.Error(1)
}

func (m *PlacesClientMock) Geocode(ctx context.Context, address string) (places.GeocodeResult, error) {
	args := m.Called(ctx, address)
	var out places.GeocodeResult
	if val := args.Get(0); val != nil {
		out = val.(places.GeocodeResult)
	}
	return out, args.Error(1)
}

func (m *PlacesClientMock) Directions(ctx context.Context, fromLat, fromLon, toLat, toLon float64) ([]places.RouteLeg, error) {
	args := m.Called(ctx, fromLat, fromLon, toLat, toLon)
	var out []places.RouteLeg
	if val := args.Get(0); val != nil {
		out = val.([]places.RouteLeg)
	}
	return out, args.Error(1)
}

var _ repositories.GiftRepository = (*GiftRepositoryMock)(nil)
var _ repositories.BasketRepository = (*BasketRepositoryMock)(nil)
var _ repositories.CollabGiftRepository = (*CollabGiftRepositoryMock)(nil)
var _ repositories.DraftRepository = (*DraftRepositoryMock)(nil)
var _ repositories.UserRepository = (*UserRepositoryMock)(nil)
var _ repositories.NudgeRepository = (*NudgeRepositoryMock)(nil)
var _ repositories.InviteRepository = (*InviteRepositoryMock)(nil)
var _ storage.AudioStore = (*AudioStoreMock)(nil)
var _ assist.Client = (*AssistClientMock)(nil)
var _ places.Client = (*PlacesClientMock)(nil)
