package api

import (
	"net/http"
	"testing"

	"challenge_league_api/internal/api/mocks"
	"challenge_league_api/internal/model"
	"challenge_league_api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTeamRouter(ts *mocks.MockTeamService) *gin.Engine {
	return newTestRouter(func(group *gin.RouterGroup) {
		NewTeamRoutes(group, ts, newTestAuthorization(false))
	})
}

func TestTeamRoutes_CreateTeam(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(ts *mocks.MockTeamService)
		expectedStatus int
		check          func(t *testing.T, body map[string]any)
	}{
		{
			name: "Created",
			body: `{"user_ids": [1, 2]}`,
			setupMocks: func(ts *mocks.MockTeamService) {
				ts.On("CreateTeam", mock.Anything, []int64{1, 2}, (*int64)(nil)).
					Return(&model.Team{TeamID: 8, TeamName: "Ann & Bo"}, nil)
			},
			expectedStatus: http.StatusCreated,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, float64(8), body["team_id"])
				assert.Equal(t, "Ann & Bo", body["team_name"])
				assert.Equal(t, []any{float64(1), float64(2)}, body["members"])
			},
		},
		{
			name:           "Empty member list",
			body:           `{"user_ids": []}`,
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, []any{"user_ids must contain at least 1 item(s)"}, body["details"])
			},
		},
		{
			name:           "Duplicate members",
			body:           `{"user_ids": [1, 1]}`,
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, []any{"user_ids must not contain duplicates"}, body["details"])
			},
		},
		{
			name:           "Member ids must be integers",
			body:           `{"user_ids": [1, 2.5], "league_room_id": "x"}`,
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, []any{
					"each user_ids item must be an integer",
					"league_room_id must be a number",
				}, body["details"])
			},
		},
		{
			name:           "Member list must be an array",
			body:           `{"user_ids": "1,2"}`,
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, []any{"user_ids must be an array"}, body["details"])
			},
		},
		{
			name: "Unknown member",
			body: `{"user_ids": [1, 99]}`,
			setupMocks: func(ts *mocks.MockTeamService) {
				ts.On("CreateTeam", mock.Anything, []int64{1, 99}, (*int64)(nil)).Return(nil, service.ErrInvalidTeamMembers)
			},
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "One or more user_ids are invalid", body["error"])
			},
		},
		{
			name: "Member already on a team",
			body: `{"user_ids": [1, 2]}`,
			setupMocks: func(ts *mocks.MockTeamService) {
				ts.On("CreateTeam", mock.Anything, []int64{1, 2}, (*int64)(nil)).Return(nil, service.ErrAlreadyOnTeam)
			},
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "User already on an active team", body["error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := &mocks.MockTeamService{}
			if tt.setupMocks != nil {
				tt.setupMocks(ts)
			}

			w := performRequest(newTeamRouter(ts), http.MethodPost, "/api/v1/create_team", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.check(t, decodeBody(t, w))
			ts.AssertExpectations(t)
		})
	}
}

func TestTeamRoutes_GetLeagueTeams(t *testing.T) {
	ts := &mocks.MockTeamService{}
	ts.On("GetLeagueTeams", mock.Anything, int64(5)).Return([]*model.LeagueTeam{
		{TeamID: 8, TeamName: "Ann & Bo", Members: []model.TeamMember{{UserID: 1, Name: "Ann"}, {UserID: 2, Name: "Bo"}}},
	}, nil)

	w := performRequest(newTeamRouter(ts), http.MethodPost, "/api/v1/get_league_teams", `{"league_room_id": 5}`)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].([]any)
	team := data[0].(map[string]any)
	assert.Equal(t, "Ann & Bo", team["team_name"])
	assert.Len(t, team["members"], 2)
	ts.AssertExpectations(t)
}
