package nps

// Response is the envelope shared by the list endpoints.
type Response[T any] struct {
	Total FlexInt `json:"total"`
	Limit FlexInt `json:"limit"`
	Start FlexInt `json:"start"`
	Data  []T     `json:"data"`
}

type Activity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Topic struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PhoneNumber struct {
	PhoneNumber string `json:"phoneNumber"`
	Description string `json:"description"`
	Extension   string `json:"extension"`
	Type        string `json:"type"`
}

type EmailAddress struct {
	EmailAddress string `json:"emailAddress"`
	Description  string `json:"description"`
}

type Contacts struct {
	PhoneNumbers   []PhoneNumber  `json:"phoneNumbers"`
	EmailAddresses []EmailAddress `json:"emailAddresses"`
}

type Fee struct {
	Cost        string `json:"cost"`
	Description string `json:"description"`
	Title       string `json:"title"`
}

type StandardHours struct {
	Sunday    string `json:"sunday"`
	Monday    string `json:"monday"`
	Tuesday   string `json:"tuesday"`
	Wednesday string `json:"wednesday"`
	Thursday  string `json:"thursday"`
	Friday    string `json:"friday"`
	Saturday  string `json:"saturday"`
}

type OperatingHours struct {
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	StandardHours StandardHours `json:"standardHours"`
}

type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	Line3      string `json:"line3"`
	City       string `json:"city"`
	StateCode  string `json:"stateCode"`
	PostalCode string `json:"postalCode"`
	Type       string `json:"type"`
}

type Image struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	AltText string `json:"altText"`
	Caption string `json:"caption"`
	Credit  string `json:"credit"`
}

// Park is one entry of /parks.
type Park struct {
	ID             string           `json:"id"`
	URL            string           `json:"url"`
	FullName       string           `json:"fullName"`
	ParkCode       string           `json:"parkCode"`
	Description    string           `json:"description"`
	Designation    string           `json:"designation"`
	States         string           `json:"states"`
	Latitude       string           `json:"latitude"`
	Longitude      string           `json:"longitude"`
	Activities     []Activity       `json:"activities"`
	Topics         []Topic          `json:"topics"`
	Contacts       Contacts         `json:"contacts"`
	EntranceFees   []Fee            `json:"entranceFees"`
	EntrancePasses []Fee            `json:"entrancePasses"`
	OperatingHours []OperatingHours `json:"operatingHours"`
	Addresses      []Address        `json:"addresses"`
	Images         []Image          `json:"images"`
	WeatherInfo    string           `json:"weatherInfo"`
	DirectionsInfo string           `json:"directionsInfo"`
	DirectionsURL  string           `json:"directionsUrl"`
}

// Alert is one entry of /alerts.
type Alert struct {
	ID              string `json:"id"`
	URL             string `json:"url"`
	Title           string `json:"title"`
	ParkCode        string `json:"parkCode"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	LastIndexedDate string `json:"lastIndexedDate"`
}

// VisitorCenter is one entry of /visitorcenters.
type VisitorCenter struct {
	ID             string           `json:"id"`
	URL            string           `json:"url"`
	Name           string           `json:"name"`
	ParkCode       string           `json:"parkCode"`
	Description    string           `json:"description"`
	Latitude       string           `json:"latitude"`
	Longitude      string           `json:"longitude"`
	DirectionsInfo string           `json:"directionsInfo"`
	DirectionsURL  string           `json:"directionsUrl"`
	Addresses      []Address        `json:"addresses"`
	OperatingHours []OperatingHours `json:"operatingHours"`
	Contacts       Contacts         `json:"contacts"`
}

type Campsites struct {
	TotalSites        FlexInt `json:"totalSites"`
	Group             FlexInt `json:"group"`
	Horse             FlexInt `json:"horse"`
	TentOnly          FlexInt `json:"tentOnly"`
	ElectricalHookups FlexInt `json:"electricalHookups"`
	RvOnly            FlexInt `json:"rvOnly"`
	WalkBoatTo        FlexInt `json:"walkBoatTo"`
	Other             FlexInt `json:"other"`
}

// Campground is one entry of /campgrounds.
type Campground struct {
	ID              string           `json:"id"`
	URL             string           `json:"url"`
	Name            string           `json:"name"`
	ParkCode        string           `json:"parkCode"`
	Description     string           `json:"description"`
	Latitude        string           `json:"latitude"`
	Longitude       string           `json:"longitude"`
	ReservationInfo string           `json:"reservationInfo"`
	ReservationURL  string           `json:"reservationUrl"`
	Fees            []Fee            `json:"fees"`
	OperatingHours  []OperatingHours `json:"operatingHours"`
	Addresses       []Address        `json:"addresses"`
	Contacts        Contacts         `json:"contacts"`
	Campsites       Campsites        `json:"campsites"`
	Amenities       map[string]any   `json:"amenities"`
}

type EventTime struct {
	TimeStart string `json:"timestart"`
	TimeEnd   string `json:"timeend"`
}

// Event is one entry of /events. The events endpoint uses lower-case keys.
type Event struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	ParkFullName string      `json:"parkfullname"`
	SiteCode     string      `json:"sitecode"`
	Description  string      `json:"description"`
	Location     string      `json:"location"`
	DateStart    string      `json:"datestart"`
	DateEnd      string      `json:"dateend"`
	Times        []EventTime `json:"times"`
	Types        []string    `json:"types"`
	Category     string      `json:"category"`
	IsFree       FlexBool    `json:"isfree"`
	FeeInfo      string      `json:"feeinfo"`
	RegResInfo   string      `json:"regresinfo"`
	InfoURL      string      `json:"infourl"`
	ContactName  string      `json:"contactname"`
	ContactEmail string      `json:"contactemailaddress"`
	ContactPhone string      `json:"contacttelephonenumber"`
}
