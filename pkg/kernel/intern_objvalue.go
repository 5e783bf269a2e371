package kernel

type Email string

func (e Email) String() string { return string(e) }
func (e Email) IsEmpty() bool  { return string(e) == "" }

type Phone string

type FirstName string

type LastName string

type PostingTitle string

type PostingDescription string

// Sector is the activity sector of an organization (e.g. "Software", "Banking")
type Sector string

// BucketURL is the blob-store key of an uploaded object
type BucketURL string

func (b BucketURL) String() string { return string(b) }
func (b BucketURL) IsEmpty() bool  { return string(b) == "" }
