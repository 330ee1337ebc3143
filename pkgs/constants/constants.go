package constants

// ImageExtensions lists the file extensions shown in a gallery (lowercase, without dot).
var ImageExtensions = []string{
	"gif",
	"jpg",
	"jpeg",
	"png",
}

// Page shell values shared by every rendered gallery.
const (
	PageTitle      = "Plot comparison"
	StylesheetName = "trf_stylesheet.css"
	GalleryID      = "galerie"
	ImageAltText   = "bar chart"
)

const (
	DefaultDir    = "."
	DefaultListen = "127.0.0.1:8080"
	DefaultJobs   = 4
)
