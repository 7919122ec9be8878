package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/resume-builder/internal/application/service"
	"github.com/khoahotran/resume-builder/internal/application/usecase/assist"
	catalogUC "github.com/khoahotran/resume-builder/internal/application/usecase/catalog"
	portfolioUC "github.com/khoahotran/resume-builder/internal/application/usecase/portfolio"
	profileUC "github.com/khoahotran/resume-builder/internal/application/usecase/profile"
	"github.com/khoahotran/resume-builder/internal/domain/catalog"
	"github.com/khoahotran/resume-builder/internal/domain/profile"
	"github.com/khoahotran/resume-builder/internal/mocks"
	"github.com/khoahotran/resume-builder/pkg/apperror"
	"github.com/khoahotran/resume-builder/pkg/logger"
)

type HandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	profileRepo  *mocks.ProfileRepo
	templateRepo *mocks.TemplateRepo
	llm          *mocks.LLM
	health       *mocks.StoreHealth
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()

	s.profileRepo = new(mocks.ProfileRepo)
	s.templateRepo = new(mocks.TemplateRepo)
	s.llm = new(mocks.LLM)
	s.health = new(mocks.StoreHealth)

	h := Handlers{
		Profile: NewProfileHandler(
			profileUC.NewGetProfileUseCase(s.profileRepo, log),
			profileUC.NewSaveProfileUseCase(s.profileRepo, nil, nil, nil, "", log),
			log,
		),
		Template:  NewTemplateHandler(catalogUC.NewListTemplatesUseCase(s.templateRepo)),
		Generate:  NewGenerateHandler(assist.NewGenerateUseCase(s.llm, log)),
		Portfolio: NewPortfolioHandler(portfolioUC.NewGetPortfolioUseCase(s.profileRepo, nil, log), log),
		Health:    NewHealthHandler(s.health, "sqlite"),
	}
	s.router = NewRouter(h, RouterConfig{GeneratePerMinute: 600}, log)
}

func (s *HandlerTestSuite) do(method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var out map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func (s *HandlerTestSuite) TestGetProfile_MissingUserID() {
	w, body := s.do(http.MethodGet, "/api/profile", nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(false, body["success"])
	s.Equal("userId is required", body["error"])
}

func (s *HandlerTestSuite) TestGetProfile_NotFound() {
	s.profileRepo.On("GetByUserID", mock.Anything, "u1").Return(nil, false, nil)

	w, body := s.do(http.MethodGet, "/api/profile?userId=u1", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Equal(false, body["exists"])
	s.Nil(body["profile"])
}

func (s *HandlerTestSuite) TestGetProfile_Found() {
	p := profile.New("u1")
	p.BasicInfo.FullName = "Ada"
	p.Skills = []string{"Go"}
	s.profileRepo.On("GetByUserID", mock.Anything, "u1").Return(p, true, nil)

	w, body := s.do(http.MethodGet, "/api/profile?userId=u1", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Equal(true, body["exists"])
	got := body["profile"].(map[string]any)
	s.Equal("Ada", got["basicInfo"].(map[string]any)["fullName"])
	s.Equal([]any{"Go"}, got["skills"])
	s.Equal([]any{}, got["education"])
	s.NotContains(got, "userId")
}

func (s *HandlerTestSuite) TestGetProfile_StoreUnavailable() {
	s.profileRepo.On("GetByUserID", mock.Anything, "u1").
		Return(nil, false, apperror.NewStoreUnavailable("query profile failed", errors.New("dial tcp: refused")))

	w, body := s.do(http.MethodGet, "/api/profile?userId=u1", nil)

	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal("Storage is temporarily unavailable", body["error"])
	s.NotContains(w.Body.String(), "refused")
}

func (s *HandlerTestSuite) TestSaveProfile_PartialBody() {
	s.profileRepo.On("Upsert", mock.Anything, "u1", profile.Record{
		profile.ColTemplateID: "clean-teal",
		profile.ColFullName:   "Ada",
		profile.ColSkills:     `["Go","SQL"]`,
	}).Return(profile.ActionCreated, nil).Once()

	w, body := s.do(http.MethodPost, "/api/profile", map[string]any{
		"userId":     "u1",
		"templateId": "clean-teal",
		"fullName":   "Ada",
		"skills":     []string{"Go", "SQL"},
	})

	s.Equal(http.StatusOK, w.Code)
	s.Equal(true, body["success"])
	s.Equal("created", body["action"])
	s.profileRepo.AssertExpectations(s.T())
}

func (s *HandlerTestSuite) TestSaveProfile_NoFields() {
	s.profileRepo.On("Upsert", mock.Anything, "u1", profile.Record{}).Return(profile.ActionNoChanges, nil)

	w, body := s.do(http.MethodPost, "/api/profile", map[string]any{"userId": "u1"})

	s.Equal(http.StatusOK, w.Code)
	s.Equal("no_changes", body["action"])
}

func (s *HandlerTestSuite) TestSaveProfile_MissingUserID() {
	w, body := s.do(http.MethodPost, "/api/profile", map[string]any{"fullName": "Ada"})

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("userId is required", body["error"])
	s.profileRepo.AssertNotCalled(s.T(), "Upsert", mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestListTemplates() {
	s.templateRepo.On("ListActive", mock.Anything).Return(catalog.Builtin()[:2], nil)

	w, body := s.do(http.MethodGet, "/api/templates", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Equal(true, body["success"])
	templates := body["templates"].([]any)
	s.Len(templates, 2)
	s.Equal("modern", templates[0].(map[string]any)["templateId"])
}

func (s *HandlerTestSuite) TestListTemplates_StoreFailure() {
	s.templateRepo.On("ListActive", mock.Anything).Return(nil, apperror.NewStoreUnavailable("query templates failed", nil))

	w, _ := s.do(http.MethodGet, "/api/templates", nil)

	s.Equal(http.StatusInternalServerError, w.Code)
}

func (s *HandlerTestSuite) TestGenerate_Success() {
	s.llm.On("Complete", mock.Anything, mock.MatchedBy(func(req service.CompletionRequest) bool {
		return req.MaxTokens == 80 && strings.Contains(req.Prompt, "Various skills")
	})).Return("  Seasoned engineer.  ", nil)

	w, body := s.do(http.MethodPost, "/api/generate-ai", map[string]any{
		"type":    "summary",
		"context": map[string]any{"jobTitle": "Engineer"},
	})

	s.Equal(http.StatusOK, w.Code)
	s.Equal(true, body["success"])
	s.Equal("Seasoned engineer.", body["text"])
}

func (s *HandlerTestSuite) TestGenerate_Validation() {
	w, body := s.do(http.MethodPost, "/api/generate-ai", map[string]any{"type": "summary"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Type and context are required", body["error"])

	w, body = s.do(http.MethodPost, "/api/generate-ai", map[string]any{"type": "poem", "context": map[string]any{}})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(body["error"], "Invalid type")
	s.llm.AssertNotCalled(s.T(), "Complete", mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestGenerate_UpstreamDetails() {
	s.llm.On("Complete", mock.Anything, mock.Anything).Return("", apperror.NewUpstream(
		"provider returned status 429",
		map[string]any{"status": 429, "message": "Rate limit reached"},
		nil,
	))

	w, body := s.do(http.MethodPost, "/api/generate-ai", map[string]any{
		"type":    "job-description",
		"context": map[string]any{"jobTitle": "Dev"},
	})

	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal("Failed to generate content", body["error"])
	s.Equal("Rate limit reached", body["details"].(map[string]any)["message"])
}

func (s *HandlerTestSuite) TestGenerate_MissingKey() {
	s.llm.On("Complete", mock.Anything, mock.Anything).
		Return("", apperror.NewConfiguration("API key not configured. Please set GROQ_API_KEY in environment variables."))

	w, body := s.do(http.MethodPost, "/api/generate-ai", map[string]any{
		"type":    "summary",
		"context": map[string]any{},
	})

	s.Equal(http.StatusInternalServerError, w.Code)
	s.Contains(body["error"], "GROQ_API_KEY")
}

func (s *HandlerTestSuite) TestPortfolio() {
	p := profile.New("u1")
	p.BasicInfo.FullName = "Ada"
	p.BasicInfo.TemplateID = string(catalog.BoldBlack)
	s.profileRepo.On("GetByUserID", mock.Anything, "u1").Return(p, true, nil)
	s.profileRepo.On("GetByUserID", mock.Anything, "ghost").Return(nil, false, nil)

	w, body := s.do(http.MethodGet, "/api/portfolio/u1", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("bold-black", body["templateId"])
	s.Equal("MISS", w.Header().Get("X-Cache"))

	w, _ = s.do(http.MethodGet, "/p/u1", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Header().Get("Content-Type"), "text/html")
	s.Contains(w.Body.String(), "Ada")

	w, _ = s.do(http.MethodGet, "/api/portfolio/ghost", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestHealth() {
	s.health.On("Check", mock.Anything).Return(nil).Once()
	w, body := s.do(http.MethodGet, "/api/health", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("connected", body["status"])

	s.health.On("Check", mock.Anything).Return(apperror.NewStoreUnavailable("tables missing", nil)).Once()
	w, _ = s.do(http.MethodGet, "/api/health", nil)
	s.Equal(http.StatusInternalServerError, w.Code)
}

func (s *HandlerTestSuite) TestRequestIDHeader() {
	s.health.On("Check", mock.Anything).Return(nil)

	w, _ := s.do(http.MethodGet, "/api/health", nil)

	s.NotEmpty(w.Header().Get(HeaderRequestID))
}

func TestRateLimitByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", RateLimitByIP(1), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 2)
	for range 2 {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status codes %v", codes)
	}
}
