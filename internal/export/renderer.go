// Package export renders a recipe into a self-contained, paginated
// document suitable for saving or printing. Rendering is a two-phase
// contract: Prepare assembles the layout inputs synchronously and
// cheaply, Materialize does the actual encoding. Callers gate their
// "download ready" state on Materialize returning, nothing else.
package export

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hammamikhairi/forager/internal/domain"
	"github.com/hammamikhairi/forager/internal/images"
)

// stepsPerPage bounds how many instruction steps share one page.
const stepsPerPage = 4

// thumbTargetWidth is the preferred rendition width for the small
// per-ingredient and per-step pictures.
const thumbTargetWidth = 100

//go:embed document.gohtml
var documentTmpl string

var tmpl = template.Must(template.New("document").Parse(documentTmpl))

// ImageBundle carries the resolved picture bytes for one recipe. Any
// entry may be absent; the document renders around the gaps.
type ImageBundle struct {
	Main        []byte
	Ingredients map[int][]byte // keyed by ingredient ID
	Steps       map[int][]byte // keyed by step ID
}

// BuildBundle resolves every picture a recipe document can use. The
// per-item fetches run concurrently; failures leave gaps, never errors.
func BuildBundle(ctx context.Context, resolver domain.ImageResolver, r *domain.Recipe) ImageBundle {
	bundle := ImageBundle{
		Ingredients: make(map[int][]byte),
		Steps:       make(map[int][]byte),
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		data, _ := resolver.Resolve(ctx, r.Images, images.DefaultTargetWidth)
		mu.Lock()
		bundle.Main = data
		mu.Unlock()
		return nil
	})
	for _, ing := range r.Ingredients {
		g.Go(func() error {
			data, _ := resolver.Resolve(ctx, ing.Ingredient.Images, thumbTargetWidth)
			if data != nil {
				mu.Lock()
				bundle.Ingredients[ing.Ingredient.ID] = data
				mu.Unlock()
			}
			return nil
		})
	}
	for _, st := range r.InstructionSteps {
		g.Go(func() error {
			data, _ := resolver.Resolve(ctx, st.Images, images.DefaultTargetWidth)
			if data != nil {
				mu.Lock()
				bundle.Steps[st.ID] = data
				mu.Unlock()
			}
			return nil
		})
	}
	g.Wait()
	return bundle
}

// Job is a prepared render: the recipe laid out into pages with its
// pictures attached, waiting to be encoded.
type Job struct {
	data docData
	slug string
}

// Filename returns a suggested name for the materialized document.
func (j *Job) Filename() string {
	return j.slug + ".html"
}

// Pages returns how many pages the document will span.
func (j *Job) Pages() int {
	return 1 + len(j.data.StepPages)
}

// Prepare lays a recipe out into the document structure. It never
// blocks; all slow work is deferred to Materialize.
func Prepare(r *domain.Recipe, bundle ImageBundle) *Job {
	data := docData{
		Title:    r.Title,
		Rating:   r.Rating,
		PrepTime: r.PrepTimeMinutes,
		Basics:   r.BasicIngredients,
		Main:     dataURI(bundle.Main),
	}

	for _, ing := range r.Ingredients {
		data.Ingredients = append(data.Ingredients, docIngredient{
			Amount: ing.Amount,
			Name:   ing.Ingredient.Name,
			Image:  dataURI(bundle.Ingredients[ing.Ingredient.ID]),
		})
	}

	var page []docStep
	for _, st := range r.InstructionSteps {
		page = append(page, docStep{
			Order: st.Order,
			Text:  st.Text,
			Image: dataURI(bundle.Steps[st.ID]),
		})
		if len(page) == stepsPerPage {
			data.StepPages = append(data.StepPages, page)
			page = nil
		}
	}
	if len(page) > 0 {
		data.StepPages = append(data.StepPages, page)
	}

	return &Job{data: data, slug: r.Slug}
}

// Materialize encodes the prepared document and returns its bytes.
func (j *Job) Materialize() ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, j.data); err != nil {
		return nil, fmt.Errorf("export: render document: %w", err)
	}
	return buf.Bytes(), nil
}

type docData struct {
	Title       string
	Rating      float64
	PrepTime    int
	Main        template.URL
	Ingredients []docIngredient
	StepPages   [][]docStep
	Basics      []string
}

type docIngredient struct {
	Amount string
	Name   string
	Image  template.URL
}

type docStep struct {
	Order int
	Text  string
	Image template.URL
}

// dataURI inlines image bytes so the document is self-contained.
// Returns "" for absent images.
func dataURI(data []byte) template.URL {
	if len(data) == 0 {
		return ""
	}
	return template.URL("data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data))
}
