package chi

import (
	"time"

	"github.com/kailas-cloud/scentdex/internal/domain/quiz"
	domrec "github.com/kailas-cloud/scentdex/internal/domain/recommend"
)

// recommendationRequest is the POST /v1/recommendations body.
type recommendationRequest struct {
	Strategy        string         `json:"strategy,omitempty"`
	QuizResponses   []quizResponse `json:"quizResponses,omitempty"`
	UserID          string         `json:"userId,omitempty"`
	Limit           int            `json:"limit,omitempty"`
	ExcludeIDs      []string       `json:"excludeIds,omitempty"`
	PreferredBrands []string       `json:"preferredBrands,omitempty"`
	History         *historyDTO    `json:"history,omitempty"`
}

type quizResponse struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
	Context    string `json:"context,omitempty"`
}

type historyDTO struct {
	InteractionCount int `json:"interactionCount"`
	PurchaseCount    int `json:"purchaseCount"`
}

// recommendationResponse is the POST /v1/recommendations reply. The
// experience level rides on each recommendation item; the classifier's
// source tag stays top-level for observability.
type recommendationResponse struct {
	Recommendations  []recommendationItem `json:"recommendations"`
	ExperienceSource string               `json:"experienceSource"`
	StrategyUsed     string               `json:"strategyUsed"`
	Degraded         bool                 `json:"degraded"`
	Cache            cacheDTO             `json:"cache"`
}

type recommendationItem struct {
	FragranceID     string         `json:"fragranceId"`
	Name            string         `json:"name"`
	Brand           string         `json:"brand"`
	Rank            int            `json:"rank"`
	Score           float64        `json:"score"`
	Similarity      float64        `json:"similarity"`
	Explanation     explanationDTO `json:"explanation"`
	ExperienceLevel string         `json:"experienceLevel"`
}

type explanationDTO struct {
	Summary          string            `json:"summary"`
	ExpandedContent  string            `json:"expandedContent,omitempty"`
	EducationalTerms map[string]string `json:"educationalTerms,omitempty"`
	Tier             string            `json:"tier"`
}

type cacheDTO struct {
	Hit       bool       `json:"hit"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// toDomainRequest converts the wire request into a validated domain request.
func (req *recommendationRequest) toDomainRequest() (domrec.Request, error) {
	var responses *quiz.ResponseSet
	if len(req.QuizResponses) > 0 {
		answers := make([]quiz.Answer, len(req.QuizResponses))
		for i, qr := range req.QuizResponses {
			answers[i] = quiz.NewAnswer(qr.QuestionID, qr.Answer, qr.Context)
		}
		rs, err := quiz.NewResponseSet(answers)
		if err != nil {
			return domrec.Request{}, err
		}
		responses = &rs
	}

	var history *domrec.History
	if req.History != nil {
		history = &domrec.History{
			InteractionCount: req.History.InteractionCount,
			PurchaseCount:    req.History.PurchaseCount,
		}
	}

	return domrec.New(
		domrec.Strategy(req.Strategy),
		responses,
		req.UserID,
		req.Limit,
		req.ExcludeIDs,
		req.PreferredBrands,
		history,
	)
}

func resultToResponse(res domrec.Result) recommendationResponse {
	level := res.ExperienceLevel

	items := make([]recommendationItem, len(res.Recommendations))
	for i := range res.Recommendations {
		rec := &res.Recommendations[i]
		item := rec.Candidate.Item()
		items[i] = recommendationItem{
			FragranceID: item.ID,
			Name:        item.Name,
			Brand:       item.Brand,
			Rank:        rec.Candidate.Rank(),
			Score:       rec.Candidate.Fused(),
			Similarity:  rec.Candidate.Similarity(),
			Explanation: explanationDTO{
				Summary:          rec.Explanation.Summary(),
				ExpandedContent:  rec.Explanation.ExpandedContent(),
				EducationalTerms: rec.Explanation.EducationalTerms(),
				Tier:             string(rec.Explanation.Tier()),
			},
			ExperienceLevel: string(level.Level()),
		}
	}

	cache := cacheDTO{Hit: res.Cache.Hit}
	if !res.Cache.ExpiresAt.IsZero() {
		t := res.Cache.ExpiresAt.UTC()
		cache.ExpiresAt = &t
	}

	return recommendationResponse{
		Recommendations:  items,
		ExperienceSource: string(level.Source()),
		StrategyUsed:     string(res.StrategyUsed),
		Degraded:         res.Degraded,
		Cache:            cache,
	}
}
