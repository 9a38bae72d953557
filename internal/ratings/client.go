package ratings

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Freeeeeet/schedule_builder/internal/model"
	"github.com/go-resty/resty/v2"
)

// ErrNotFound преподаватель с точным совпадением имени не найден
var ErrNotFound = errors.New("professor not found")

const (
	searchCount          = 10
	DefaultCommentsCount = 50
)

const teacherSearchQuery = `
query TeacherSearchPaginationQuery($count: Int!, $cursor: String, $query: TeacherSearchQuery!) {
  search: newSearch {
    teachers(query: $query, first: $count, after: $cursor) {
      edges {
        node {
          firstName
          lastName
          id
          department
          avgRating
          avgDifficulty
          numRatings
          wouldTakeAgainPercent
          school { name }
        }
      }
    }
  }
}`

const ratingsListQuery = `
query RatingsListQuery($count: Int!, $id: ID!, $courseFilter: String, $cursor: String) {
  node(id: $id) {
    __typename
    ... on Teacher {
      ratings(first: $count, after: $cursor, courseFilter: $courseFilter) {
        edges {
          node {
            comment
            ratingTags
            class
            date
          }
        }
      }
    }
  }
}`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// Teacher узел поиска преподавателей
type Teacher struct {
	ID                    string   `json:"id"`
	FirstName             string   `json:"firstName"`
	LastName              string   `json:"lastName"`
	Department            string   `json:"department"`
	AvgRating             *float64 `json:"avgRating"`
	AvgDifficulty         *float64 `json:"avgDifficulty"`
	NumRatings            int      `json:"numRatings"`
	WouldTakeAgainPercent *float64 `json:"wouldTakeAgainPercent"`
	School                struct {
		Name string `json:"name"`
	} `json:"school"`
}

type searchResponse struct {
	Data struct {
		Search struct {
			Teachers struct {
				Edges []struct {
					Node Teacher `json:"node"`
				} `json:"edges"`
			} `json:"teachers"`
		} `json:"search"`
	} `json:"data"`
}

type ratingsResponse struct {
	Data struct {
		Node struct {
			Ratings struct {
				Edges []struct {
					Node struct {
						Comment    string `json:"comment"`
						RatingTags string `json:"ratingTags"`
						Class      string `json:"class"`
						Date       string `json:"date"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"ratings"`
		} `json:"node"`
	} `json:"data"`
}

// Client GraphQL-клиент RateMyProfessors
type Client struct {
	http     *resty.Client
	schoolID string
}

// NewClient создаёт клиента; baseURL без /graphql
func NewClient(baseURL, schoolID string) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36").
		SetHeader("Referer", "https://www.ratemyprofessors.com/").
		SetTimeout(10 * time.Second)

	return &Client{http: c, schoolID: schoolID}
}

func (c *Client) post(ctx context.Context, body graphQLRequest, result any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(&body).
		SetResult(result).
		Post("/graphql")
	if err != nil {
		return fmt.Errorf("ratemyprofessors request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("ratemyprofessors status %d", resp.StatusCode())
	}
	return nil
}

// FindProfessor ищет преподавателя школы с точным (без учёта регистра) совпадением имени
func (c *Client) FindProfessor(ctx context.Context, first, last string) (*Teacher, error) {
	req := graphQLRequest{
		Query: teacherSearchQuery,
		Variables: map[string]any{
			"count":  searchCount,
			"cursor": nil,
			"query": map[string]any{
				"text":     first + " " + last,
				"schoolID": c.schoolID,
				"fallback": true,
			},
		},
	}

	var resp searchResponse
	if err := c.post(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("search professor: %w", err)
	}

	wantFirst := strings.ToLower(strings.TrimSpace(first))
	wantLast := strings.ToLower(strings.TrimSpace(last))
	for _, edge := range resp.Data.Search.Teachers.Edges {
		t := edge.Node
		if strings.ToLower(strings.TrimSpace(t.FirstName)) == wantFirst &&
			strings.ToLower(strings.TrimSpace(t.LastName)) == wantLast {
			return &t, nil
		}
	}

	return nil, ErrNotFound
}

// Comments возвращает до count последних отзывов
func (c *Client) Comments(ctx context.Context, id string, count int) ([]model.ProfessorComment, error) {
	if count <= 0 {
		count = DefaultCommentsCount
	}

	req := graphQLRequest{
		Query: ratingsListQuery,
		Variables: map[string]any{
			"count":        count,
			"id":           id,
			"courseFilter": nil,
			"cursor":       nil,
		},
	}

	var resp ratingsResponse
	if err := c.post(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	edges := resp.Data.Node.Ratings.Edges
	comments := make([]model.ProfessorComment, 0, len(edges))
	for _, e := range edges {
		comments = append(comments, model.ProfessorComment{
			Comment: e.Node.Comment,
			Tags:    e.Node.RatingTags,
			Class:   e.Node.Class,
			Date:    e.Node.Date,
		})
	}
	return comments, nil
}

// Lookup собирает сводку и отзывы по полному имени.
// Ошибка загрузки отзывов не фатальна: запись возвращается без них.
func (c *Client) Lookup(ctx context.Context, fullName string) (*model.ProfessorRating, error) {
	first, last, ok := SplitName(fullName)
	if !ok {
		return nil, ErrNotFound
	}

	t, err := c.FindProfessor(ctx, first, last)
	if err != nil {
		return nil, err
	}

	comments, err := c.Comments(ctx, t.ID, DefaultCommentsCount)
	if err != nil {
		comments = []model.ProfessorComment{}
	}

	return &model.ProfessorRating{
		ProfessorInfo: model.ProfessorInfo{
			FirstName:             t.FirstName,
			LastName:              t.LastName,
			Department:            t.Department,
			School:                t.School.Name,
			AvgRating:             t.AvgRating,
			AvgDifficulty:         t.AvgDifficulty,
			NumRatings:            t.NumRatings,
			WouldTakeAgainPercent: t.WouldTakeAgainPercent,
		},
		Comments:  comments,
		FetchedAt: time.Now(),
	}, nil
}

// SplitName делит "Mary Ann Smith" на "Mary" и "Ann Smith"
func SplitName(full string) (first, last string, ok bool) {
	parts := strings.Fields(full)
	if len(parts) < 2 {
		return "", "", false
	}
	return parts[0], strings.Join(parts[1:], " "), true
}

// NameKey нормализованный ключ для кэша
func NameKey(full string) string {
	return strings.ToLower(strings.Join(strings.Fields(full), " "))
}
