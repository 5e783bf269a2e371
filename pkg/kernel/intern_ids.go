package kernel

type PostingID string

func NewPostingID(id string) PostingID { return PostingID(id) }
func (p PostingID) String() string     { return string(p) }
func (p PostingID) IsEmpty() bool      { return string(p) == "" }

type CandidatureID string

func NewCandidatureID(id string) CandidatureID { return CandidatureID(id) }
func (c CandidatureID) String() string         { return string(c) }
func (c CandidatureID) IsEmpty() bool          { return string(c) == "" }

type StageID string

func NewStageID(id string) StageID { return StageID(id) }
func (s StageID) String() string   { return string(s) }
func (s StageID) IsEmpty() bool    { return string(s) == "" }

type MissionID string

func NewMissionID(id string) MissionID { return MissionID(id) }
func (m MissionID) String() string     { return string(m) }
func (m MissionID) IsEmpty() bool      { return string(m) == "" }

type CriterionID string

func NewCriterionID(id string) CriterionID { return CriterionID(id) }
func (c CriterionID) String() string       { return string(c) }
func (c CriterionID) IsEmpty() bool        { return string(c) == "" }

type EvaluationID string

func NewEvaluationID(id string) EvaluationID { return EvaluationID(id) }
func (e EvaluationID) String() string        { return string(e) }
func (e EvaluationID) IsEmpty() bool         { return string(e) == "" }

type CertificateID string

func NewCertificateID(id string) CertificateID { return CertificateID(id) }
func (c CertificateID) String() string         { return string(c) }
func (c CertificateID) IsEmpty() bool          { return string(c) == "" }
