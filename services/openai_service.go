package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/flwsb/pregnancy-nutrition-bot/models"
)

// IdentifiedFood is one food the model spotted, with its estimated portion.
type IdentifiedFood struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// OpenAIService wraps the two outbound calls to the hosted model API:
// food identification from a meal photo and recommendation phrasing.
// Single attempt per call; every failure kind wraps ErrAnalysis.
type OpenAIService struct {
	client          *http.Client
	apiKey          string
	baseURL         string
	visionModel     string
	textModel       string
	transcribeModel string
}

func NewOpenAIService(apiKey, baseURL, visionModel, textModel, transcribeModel string) *OpenAIService {
	return &OpenAIService{
		client:          &http.Client{Timeout: 60 * time.Second},
		apiKey:          apiKey,
		baseURL:         strings.TrimRight(baseURL, "/"),
		visionModel:     visionModel,
		textModel:       textModel,
		transcribeModel: transcribeModel,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"` // string, or []contentPart for vision
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// chat posts one chat-completions request and returns the first choice.
func (s *OpenAIService) chat(ctx context.Context, req chatRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", ErrAnalysis, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", ErrAnalysis, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: call model API: %v", ErrAnalysis, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrAnalysis, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: model API error %d: %s", ErrAnalysis, resp.StatusCode, string(body))
	}

	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrAnalysis, err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrAnalysis)
	}
	return out.Choices[0].Message.Content, nil
}

const identifyInstruction = `Identify all foods in this meal. For each food item provide one line:
1. The food name
2. Estimated quantity in grams, e.g. "150g chicken breast" or "chicken breast (150g)". Countable items may use pieces, e.g. "1 piece banana".
If you cannot identify any food, reply with the single word NONE.`

// IdentifyFoods sends the photo to the vision model and parses the
// returned food list. An empty slice is a valid result: it means the
// model saw no foods, and no diary entry must be created from it.
func (s *OpenAIService) IdentifyFoods(ctx context.Context, image []byte) ([]IdentifiedFood, error) {
	dataURI := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image)

	content, err := s.chat(ctx, chatRequest{
		Model: s.visionModel,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are a nutrition expert analyzing meal photos. Identify all foods visible in the image and estimate their quantities in grams.",
			},
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: identifyInstruction},
					{Type: "image_url", ImageURL: &imageURL{URL: dataURI}},
				},
			},
		},
		MaxTokens: 500,
	})
	if err != nil {
		return nil, err
	}
	return parseFoodLines(content), nil
}

// IdentifyFoodsFromText parses a free-text meal description ("I had
// chicken with rice") into the same food list as the vision path.
func (s *OpenAIService) IdentifyFoodsFromText(ctx context.Context, description string) ([]IdentifiedFood, error) {
	content, err := s.chat(ctx, chatRequest{
		Model: s.textModel,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are a nutrition expert. The user describes a meal they ate; list the foods with estimated quantities in grams.",
			},
			{
				Role:    "user",
				Content: fmt.Sprintf("%s\n\nMeal description: %q", identifyInstruction, description),
			},
		},
		MaxTokens: 300,
	})
	if err != nil {
		return nil, err
	}
	return parseFoodLines(content), nil
}

var (
	// "150g chicken breast", "200 ml milk"
	qtyFirstRe = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s*(g|ml)\s+(.+)$`)
	// "chicken breast (150g)"
	qtyParenRe = regexp.MustCompile(`(?i)^(.+?)\s*\((\d+(?:\.\d+)?)\s*(g|ml)\)$`)
	// "1 piece banana", "2 pieces of bread"
	pieceRe = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s+pieces?\s+(?:of\s+)?(.+)$`)
	// "banana (1 piece)"
	pieceParenRe = regexp.MustCompile(`(?i)^(.+?)\s*\((\d+(?:\.\d+)?)\s+pieces?\)$`)

	// "- ", "• ", "1. ", "2) " list markers; bare digits stay, they are
	// quantities.
	linePrefixRe = regexp.MustCompile(`^(?:[-•*]+|\d+[.)])\s*`)
)

// parseFoodLines extracts (name, quantity, unit) tuples from the model's
// line-oriented answer. Unrecognized quantity formats default to 100 g,
// matching the reference-table basis.
func parseFoodLines(text string) []IdentifiedFood {
	var foods []IdentifiedFood

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(linePrefixRe.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "none") {
			continue
		}

		if m := qtyFirstRe.FindStringSubmatch(line); m != nil {
			qty, _ := strconv.ParseFloat(m[1], 64)
			foods = append(foods, IdentifiedFood{Name: strings.TrimSpace(m[3]), Quantity: qty, Unit: strings.ToLower(m[2])})
			continue
		}
		if m := qtyParenRe.FindStringSubmatch(line); m != nil {
			qty, _ := strconv.ParseFloat(m[2], 64)
			foods = append(foods, IdentifiedFood{Name: strings.TrimSpace(m[1]), Quantity: qty, Unit: strings.ToLower(m[3])})
			continue
		}
		if m := pieceRe.FindStringSubmatch(line); m != nil {
			qty, _ := strconv.ParseFloat(m[1], 64)
			foods = append(foods, IdentifiedFood{Name: strings.TrimSpace(m[2]), Quantity: qty, Unit: "piece"})
			continue
		}
		if m := pieceParenRe.FindStringSubmatch(line); m != nil {
			qty, _ := strconv.ParseFloat(m[2], 64)
			foods = append(foods, IdentifiedFood{Name: strings.TrimSpace(m[1]), Quantity: qty, Unit: "piece"})
			continue
		}
		if len(line) > 2 {
			foods = append(foods, IdentifiedFood{Name: line, Quantity: 100, Unit: "g"})
		}
	}
	return foods
}

// missingText lists the report's positive deficits for a prompt.
func missingText(report models.GapReport) string {
	var missing []string
	for nutrient, deficit := range report.Missing() {
		missing = append(missing, fmt.Sprintf("- %s: %.1f below target",
			strings.ReplaceAll(nutrient, "_", " "), deficit))
	}
	if len(missing) == 0 {
		return "None - all targets met!"
	}
	return strings.Join(missing, "\n")
}

// intakeText lists consumed vs target for the headline nutrients.
func intakeText(report models.GapReport) string {
	var intake strings.Builder
	for _, n := range headlineNutrients {
		gap := report.Nutrients[n.key]
		fmt.Fprintf(&intake, "- %s: %.1f%s / %.1f%s\n", n.label, gap.Consumed, n.unit, gap.Target, n.unit)
	}
	return intake.String()
}

// PhraseRecommendation asks the text model to phrase 2-3 practical meal
// suggestions from a gap report. Callers fall back to a templated string
// (FallbackRecommendation) when this fails.
func (s *OpenAIService) PhraseRecommendation(ctx context.Context, report models.GapReport, profileContext string) (string, error) {
	prompt := fmt.Sprintf(`You are a nutritionist helping a pregnant woman optimize her diet.

%s

Current %s intake:
%s
Nutrients that need attention:
%s

Provide 2-3 specific, practical meal or snack suggestions that would help address the missing nutrients. Be encouraging and pregnancy-appropriate. Keep it concise (2-3 sentences per suggestion).`,
		profileContext, report.Period, intakeText(report), missingText(report))

	return s.chat(ctx, chatRequest{
		Model: s.textModel,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are a friendly, supportive nutritionist specializing in pregnancy nutrition. Provide practical, encouraging advice.",
			},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   300,
		Temperature: 0.7,
	})
}

// AnswerQuestion answers a free-form nutrition question ("what nutrients am
// I missing?", "what week am I in?") grounded in today's gap report and the
// pregnancy profile.
func (s *OpenAIService) AnswerQuestion(ctx context.Context, question string, report models.GapReport, profileContext string) (string, error) {
	prompt := fmt.Sprintf(`You are a nutritionist helping a pregnant woman. You already know her profile and today's intake - answer her question directly, do not ask for the information back.

%s

Today's intake (%d meals logged):
%s
Nutrients below target:
%s

She asked: %q

Answer naturally and helpfully. Keep it short (2-4 sentences).`,
		profileContext, report.MealCount, intakeText(report), missingText(report), question)

	return s.chat(ctx, chatRequest{
		Model: s.textModel,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are a friendly, supportive nutritionist specializing in pregnancy nutrition. You know the user's profile and intake - answer directly.",
			},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   300,
		Temperature: 0.7,
	})
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// TranscribeVoice sends an ogg voice recording to the transcription endpoint
// and returns the spoken text.
func (s *OpenAIService) TranscribeVoice(ctx context.Context, audio []byte) (string, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := form.WriteField("model", s.transcribeModel); err != nil {
		return "", fmt.Errorf("%w: build form: %v", ErrAnalysis, err)
	}
	part, err := form.CreateFormFile("file", "voice.ogg")
	if err != nil {
		return "", fmt.Errorf("%w: build form: %v", ErrAnalysis, err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("%w: build form: %v", ErrAnalysis, err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("%w: build form: %v", ErrAnalysis, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", ErrAnalysis, err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: call transcription API: %v", ErrAnalysis, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrAnalysis, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: transcription API error %d: %s", ErrAnalysis, resp.StatusCode, string(body))
	}

	var out transcriptionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrAnalysis, err)
	}
	return strings.TrimSpace(out.Text), nil
}
