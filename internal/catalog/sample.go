package catalog

import (
	"context"
	"time"

	"baselineexplorer/pkg/models"
)

// SampleSource serves the built-in demo data set. Delay simulates the
// latency of a real fetch.
type SampleSource struct {
	Delay time.Duration
}

func (SampleSource) Name() string { return "sample" }

func (s SampleSource) FetchAll(ctx context.Context) ([]models.Feature, error) {
	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return SampleFeatures(), nil
}

// SampleFeatures returns a fresh copy of the demo data set.
func SampleFeatures() []models.Feature {
	out := make([]models.Feature, len(sampleFeatures))
	copy(out, sampleFeatures)
	return out
}

var sampleFeatures = []models.Feature{
	{
		ID:          "html-article",
		Name:        "<article>",
		Category:    models.CategoryHTML,
		Status:      models.StatusBaseline,
		Description: "Represents a self-contained composition in a document, page, application, or site.",
		MDNURL:      "https://developer.mozilla.org/en-US/docs/Web/HTML/Element/article",
	},
	{
		ID:          "html-section",
		Name:        "<section>",
		Category:    models.CategoryHTML,
		Status:      models.StatusBaseline,
		Description: "Represents a generic standalone section of a document.",
		MDNURL:      "https://developer.mozilla.org/en-US/docs/Web/HTML/Element/section",
	},
	{
		ID:          "html-nav",
		Name:        "<nav>",
		Category:    models.CategoryHTML,
		Status:      models.StatusBaseline,
		Description: "Represents a section of a page whose purpose is to provide navigation links.",
		MDNURL:      "https://developer.mozilla.org/en-US/docs/Web/HTML/Element/nav",
	},
	{
		ID:          "html-dialog",
		Name:        "<dialog>",
		Category:    models.CategoryHTML,
		Status:      models.StatusBaseline,
		Description: "Represents a dialog box or other interactive component.",
		MDNURL:      "https://developer.mozilla.org/en-US/docs/Web/HTML/Element/dialog",
	},
	{
		ID:          "html-details",
		Name:        "<details>",
		Category:    models.CategoryHTML,
		Status:      models.StatusBaseline,
		Description: "Creates a disclosure widget in which information is visible only when the widget is toggled into an \"open\" state.",
		MDNURL:      "https://developer.mozilla.org/en-US/docs/Web/HTML/Element/details",
	},
	{
		ID:          "html-input-types",
		Name:        "Input Types",
		Category:    models.CategoryHTML,
		Status:      models.StatusBaseline,
		Description: "Various input types like email, url, tel, number, date, etc.",
		MDNURL:      "https://developer.mozilla.org/en-US/docs/Web/HTML/Element/input",
	},
	{
		ID:          "css-flexbox",
		Name:        "Flexbox",
		Category:    models.CategoryCSS,
		Status:      models.StatusBaseline,
		Description: "CSS Flexible Box Layout for efficient layout of items in a container.",
		MDNURL:      "https://developer.mozilla.org/en-US/docs/Web/CSS/CSS_Flexible_Box_Layout",
	},
	{
		ID:          "css-grid",
		Name:        "CSS Grid",
		Category:    models.CategoryCSS,
		Status:      models.StatusBaseline,
		Description: "CSS Grid Layout for creating complex, responsive web layouts.",
		MDNURL:      "https://developer.mozilla.org/en-US/docs/Web/CSS/CSS_Grid_Layout",
	},
	{
		ID:          "css-custom-properties",
		Name:        "CSS Custom Properties",
		Category:    models.CategoryCSS,
		Status:      models.StatusBaseline,
		Description: "CSS variables that allow value reuse and easier theming.",
		MDNURL:      "https://developer.mozilla.org/en-US/docs/Web/CSS/--*",
	},
	{
		ID:          "css-transforms",
		Name:        "CSS Transforms",
		Category:    models.CategoryCSS,
		Status:      models.StatusBaseline,
		Description: "CSS properties that let you rotate, scale, skew, or translate an element.",
		MDNURL:      "https://developer.mozilla.org/en-US/docs/Web/CSS/transform",
	},
	{
		ID:          "css-transitions",
		Name:        "CSS Transitions",
		Category:    models.CategoryCSS,
		Status:      models.StatusBaseline,
		Description: "CSS properties that allow you to change property values smoothly over a given duration.",
		MDNURL:      "https://developer.mozilla.org/en-US/docs/Web/CSS/CSS_Transitions",
	},
	{
		ID:          "css-media-queries",
		Name:        "Media Queries",
		Category:    models.CategoryCSS,
		Status:      models.StatusBaseline,
		Description: "CSS technique for applying styles based on device characteristics.",
		MDNURL:      "https://developer.mozilla.org/en-US/docs/Web/CSS/Media_Queries",
	},
	{
		ID:          "js-arrow-functions",
		Name:        "Arrow Functions",
		Category:    models.CategoryJavaScript,
		Status:      models.StatusBaseline,
		Description: "Shorter function syntax with lexical this binding.",
		MDNURL:      "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference/Functions/Arrow_functions",
	},
	{
		ID:          "js-promises",
		Name:        "Promises",
		Category:    models.CategoryJavaScript,
		Status:      models.StatusBaseline,
		Description: "Objects representing the eventual completion or failure of an asynchronous operation.",
		MDNURL:      "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference/Global_Objects/Promise",
	},
	{
		ID:          "js-async-await",
		Name:        "Async/Await",
		Category:    models.CategoryJavaScript,
		Status:      models.StatusBaseline,
		Description: "Syntactic sugar for working with promises in a more synchronous-looking way.",
		MDNURL:      "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference/Statements/async_function",
	},
	{
		ID:          "js-modules",
		Name:        "ES Modules",
		Category:    models.CategoryJavaScript,
		Status:      models.StatusBaseline,
		Description: "Native JavaScript module system for organizing and sharing code.",
		MDNURL:      "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Guide/Modules",
	},
	{
		ID:          "js-template-literals",
		Name:        "Template Literals",
		Category:    models.CategoryJavaScript,
		Status:      models.StatusBaseline,
		Description: "String literals allowing embedded expressions and multi-line strings.",
		MDNURL:      "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference/Template_literals",
	},
	{
		ID:          "js-destructuring",
		Name:        "Destructuring",
		Category:    models.CategoryJavaScript,
		Status:      models.StatusBaseline,
		Description: "JavaScript expression that makes it possible to unpack values from arrays or properties from objects.",
		MDNURL:      "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Reference/Operators/Destructuring_assignment",
	},
	{
		ID:          "api-fetch",
		Name:        "Fetch API",
		Category:    models.CategoryAPI,
		Status:      models.StatusBaseline,
		Description: "Modern interface for fetching resources asynchronously across the network.",
		MDNURL:      "https://developer.mozilla.org/en-US/docs/Web/API/Fetch_API",
	},
	{
		ID:          "api-intersection-observer",
		Name:        "Intersection Observer",
		Category:    models.CategoryAPI,
		Status:      models.StatusBaseline,
		Description: "API that allows observing changes in the intersection of a target element with an ancestor element.",
		MDNURL:      "https://developer.mozilla.org/en-US/docs/Web/API/Intersection_Observer_API",
	},
	{
		ID:          "api-web-storage",
		Name:        "Web Storage",
		Category:    models.CategoryAPI,
		Status:      models.StatusBaseline,
		Description: "API for storing data in the browser (localStorage and sessionStorage).",
		MDNURL:      "https://developer.mozilla.org/en-US/docs/Web/API/Web_Storage_API",
	},
	{
		ID:          "api-geolocation",
		Name:        "Geolocation API",
		Category:    models.CategoryAPI,
		Status:      models.StatusBaseline,
		Description: "API for accessing the geographical location of the device.",
		MDNURL:      "https://developer.mozilla.org/en-US/docs/Web/API/Geolocation_API",
	},
	{
		ID:          "api-canvas",
		Name:        "Canvas API",
		Category:    models.CategoryAPI,
		Status:      models.StatusBaseline,
		Description: "API for drawing graphics via JavaScript and the HTML <canvas> element.",
		MDNURL:      "https://developer.mozilla.org/en-US/docs/Web/API/Canvas_API",
	},
	{
		ID:          "api-web-workers",
		Name:        "Web Workers",
		Category:    models.CategoryAPI,
		Status:      models.StatusBaseline,
		Description: "API for running scripts in background threads separate from the main execution thread.",
		MDNURL:      "https://developer.mozilla.org/en-US/docs/Web/API/Web_Workers_API",
	},
	// not yet baseline
	{
		ID:          "css-container-queries",
		Name:        "Container Queries",
		Category:    models.CategoryCSS,
		Status:      models.StatusNotBaseline,
		Description: "CSS queries that allow elements to adapt their styles based on the size of their container.",
		MDNURL:      "https://developer.mozilla.org/en-US/docs/Web/CSS/CSS_Container_Queries",
	},
	{
		ID:          "api-webgpu",
		Name:        "WebGPU API",
		Category:    models.CategoryAPI,
		Status:      models.StatusNotBaseline,
		Description: "Next-generation graphics and compute API for the web.",
		MDNURL:      "https://developer.mozilla.org/en-US/docs/Web/API/WebGPU_API",
	},
}
