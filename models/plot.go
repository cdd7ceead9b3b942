package models

type PlotStatus string

const (
	PlotStatusAvailable PlotStatus = "available"
	PlotStatusReserved  PlotStatus = "reserved"
	PlotStatusSold      PlotStatus = "sold"
)

type LandPlot struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	Title            string      `gorm:"size:255;index" json:"title"`
	Description      Description `gorm:"type:json" json:"description"`
	CadastralNumbers StringList  `gorm:"type:json" json:"cadastral_numbers"`
	Area             float64     `json:"area"`
	SpecifiedArea    *float64    `json:"specified_area"`
	Price            int64       `json:"price"`
	PricePerSotka    int64       `json:"price_per_sotka"`
	Location         string      `gorm:"size:255" json:"location"`
	Region           string      `gorm:"size:255" json:"region"`
	LandCategory     string      `gorm:"size:255" json:"land_category"`
	PermittedUse     string      `gorm:"size:255" json:"permitted_use"`
	Features         StringList  `gorm:"type:json" json:"features"`
	Communications   StringList  `gorm:"type:json" json:"communications"`
	Status           PlotStatus  `gorm:"size:20;default:available" json:"status"`
	IsVisible        bool        `gorm:"default:true" json:"is_visible"`

	Images []Image `gorm:"many2many:plot_images;joinForeignKey:PlotID" json:"images"`
}

func (LandPlot) TableName() string {
	return "land_plots"
}

type Image struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Filename string `gorm:"size:255" json:"filename"`
	Path     string `gorm:"size:255" json:"path"`
	IsMain   bool   `gorm:"not null;default:false" json:"is_main"`
	// Display position within a plot. Values need not be contiguous or
	// unique; readers sort by (is_main DESC, sort_order ASC, id ASC).
	SortOrder int `gorm:"not null;default:0;index" json:"order"`
}
