package site

// Stat is a headline figure with its caption.
type Stat struct {
	Value string
	Label string
}

// Image is a logo or icon reference under /public.
type Image struct {
	Src    string
	Alt    string
	Width  int
	Height int
	Class  string
}

// Testimonial is a customer quote.
type Testimonial struct {
	Quote  string
	Name   string
	Role   string
	Avatar string
}

// Step is one numbered step of a process.
type Step struct {
	Title string
	Text  string
	Icon  string
}

// Pillar is a two-line headline with supporting text.
type Pillar struct {
	Headline string
	Subhead  string
	Text     string
}

// Feature is an icon, title and description block.
type Feature struct {
	Title string
	Text  string
	Icon  string
}

// Product is a cover product card.
type Product struct {
	Title string
	Blurb string
	Link  string
	Icon  Image
}

// Story is a past claims event shown in the claims carousel.
type Story struct {
	Logos       []Image
	Stats       []Stat
	Title       string
	Date        string
	Description string
}

// VisibleStats drops placeholder stats that have no value.
func (s Story) VisibleStats() []Stat {
	out := make([]Stat, 0, len(s.Stats))
	for _, st := range s.Stats {
		if st.Value != "" {
			out = append(out, st)
		}
	}
	return out
}

// Home page content.
var (
	HomeStats = []Stat{
		{Value: "$5.75B+", Label: "in crypto protected"},
		{Value: "10,000+", Label: "covers provided"},
		{Value: "#1", Label: "in claims paid"},
	}

	Testimonials = []Testimonial{
		{
			Quote:  "As a leading digital asset hedge fund, Edge Capital is committed to providing a superior return to our LPs while safeguarding their assets. By relying on Nexus Mutual as a key part of our security strategy, we have been able to further grow our asset base while pursuing new investment opportunities.",
			Name:   "Vadim Khramov",
			Role:   "Managing Director, Edge Capital",
			Avatar: "/images/team/vadim-khramov.jpeg",
		},
		{
			Quote:  "The cost-efficient Fund Portfolio Cover from market-leader Nexus Mutual allows us to provide an even more asymmetric risk-return profile in our yield-generating funds. Nexus Mutual is the only company we trust to issue a cover that fits the complexities of our operations.",
			Name:   "Alessandro Buser",
			Role:   "CTO, Dialectic",
			Avatar: "/images/team/alessandro-buser.jpeg",
		},
		{
			Quote:  "At Fasanara, we navigate the complexities of DeFi with a scientific approach. Nexus Mutual is the partner we rely on to provide bespoke risk coverage, allowing us to deploy innovative strategies with confidence.",
			Name:   "Fasanara Digital",
			Avatar: "/images/companies/fasanara-capital.jpeg",
		},
	}

	TrustedBy = []Image{
		companyLogo("re7-capital.png", "Re7Capital"),
		companyLogo("edge-capital.png", "Edge Capital"),
		companyLogo("dialectic.png", "Dialectic"),
		companyLogo("fasanara.png", "Fasanara"),
		companyLogo("native.png", "Native"),
		companyLogo("opencover.png", "Opencover"),
		companyLogo("rockaway.png", "Rockaway"),
		companyLogo("ensuro.png", "Ensuro"),
		companyLogo("ether-fi.png", "Ether.fi"),
	}

	HowItWorks = []Step{
		{Title: "Step 1", Icon: "/images/icons/step-1.svg", Text: "Connect with our team of experts to review your crypto risk exposure"},
		{Title: "Step 2", Icon: "/images/icons/step-2.svg", Text: "Get a cover plan tailored to your needs and budget"},
		{Title: "Step 3", Icon: "/images/icons/step-3.svg", Text: "Easily purchase cover with ETH, USDC, or BTC for instant protection"},
		{Title: "Step 4", Icon: "/images/icons/step-4.svg", Text: "Receive hands on support if you ever need to file a claim to get reimbursed"},
	}

	WhyUs = []Pillar{
		{Headline: "Get Paid", Subhead: "in Days", Text: "With cover from Nexus Mutual, you'll get reimbursed within days"},
		{Headline: "100%", Subhead: "Transparent", Text: "Everything from our assets to claims history are transparent and verifiable"},
		{Headline: "$100M+", Subhead: "in Assets", Text: "Our substantial asset pool means we're ready to help in any situation"},
		{Headline: "Unmatched", Subhead: "Solutions", Text: "We have the experience to create bespoke covers that no one else can offer"},
	}

	AsSeenOn = []Image{
		mediaLogo("the-block.png", "The Block"),
		mediaLogo("blockworks.png", "Blockworks"),
		mediaLogo("bankless.png", "Bankless"),
		mediaLogo("forbes.jpg", "Forbes"),
		mediaLogo("decrypt.png", "Decrypt"),
		mediaLogo("coindesk.png", "CoinDesk"),
	}
)

func companyLogo(file, alt string) Image {
	return Image{
		Src:    "/images/companies/" + file,
		Alt:    alt,
		Width:  150,
		Height: 48,
		Class:  "max-h-10 w-auto opacity-60 hover:opacity-100 transition-opacity object-contain",
	}
}

func mediaLogo(file, alt string) Image {
	return Image{
		Src:    "/images/media/" + file,
		Alt:    alt,
		Width:  120,
		Height: 32,
		Class:  "max-h-6 w-auto opacity-60 hover:opacity-100 transition-opacity object-contain",
	}
}

// Products lists the cover products.
var Products = []Product{
	{
		Title: "Cover from Nexus Mutual",
		Blurb: "Protect your assets across all of DeFi in one click. Choose from three comprehensive plans tailored to different strategies.",
		Link:  "https://nexusmutual.io/everything-pass",
		Icon:  Image{Src: "/images/icons/nexus-mutual-cover.png", Alt: "Cover Plans", Width: 32, Height: 32, Class: "w-8 h-8"},
	},
	{
		Title: "Protocol Cover",
		Blurb: "Secure your assets deposited in a single protocol against a range of loss events, including hacks, exploits and more.",
		Link:  "https://docs.nexusmutual.io/overview/cover-products/protocol-cover/",
		Icon:  Image{Src: "/images/icons/protocol-cover.svg", Alt: "Protocol Cover", Width: 48, Height: 48, Class: "w-12 h-12"},
	},
	{
		Title: "Depeg Cover",
		Blurb: "With Depeg Cover from Nexus Mutual, you no longer have to worry about your favorite stablecoin and ETH or BTC derivatives losing their peg.",
		Link:  "https://nexusmutual.io/blog/dont-worry-about-depegs-introducing-depeg-cover-from-nexus-mutual",
		Icon:  Image{Src: "/images/icons/depeg-cover.svg", Alt: "Depeg Cover", Width: 28, Height: 28, Class: "w-7 h-7"},
	},
	{
		Title: "Slashing Cover",
		Blurb: "Acting as a validator operator can be lucrative, yet downtime can lead to losses. Secure your validators with cover that protects against slashing penalties.",
		Link:  "https://docs.nexusmutual.io/overview/cover-products/eth-slashing-cover/",
		Icon:  Image{Src: "/images/icons/slashing-cover.svg", Alt: "Slashing Cover", Width: 48, Height: 48, Class: "w-12 h-12"},
	},
}

// ClaimsPaid is the claims page headline figure.
const ClaimsPaid = "$18,249,286"

// Claims page content.
var (
	ClaimSteps = []Step{
		{Icon: "/images/icons/step-1.svg", Text: "Review that your incident is covered by the cover product wording and submit your claim."},
		{Icon: "/images/icons/step-2.svg", Text: "Provide details of the incident."},
		{Icon: "/images/icons/step-3.svg", Text: "Submit proof of loss, which is specific to each cover product."},
		{Icon: "/images/icons/step-4.svg", Text: "Assessors review a claim's validity and vote on the outcome. Decisions are made within 3 to 6 days."},
	}

	ClaimsProcess = []Feature{
		{
			Title: "Discretionary mutual",
			Icon:  "/images/icons/discretionary-mutual.svg",
			Text:  "There's no centralised claims department deciding on payouts. Just a fair, honest claims assessment process that is open to all members.",
		},
		{
			Title: "Incentivised to vote honestly",
			Icon:  "/images/icons/incentivised-voting.svg",
			Text:  "Members stake and lock their NXM to vote on claims. Those who vote honestly are rewarded. Those who vote fraudulently risk losing their NXM.",
		},
		{
			Title: "Protected against fraudulent voting",
			Icon:  "/images/icons/protected-voting.svg",
			Text:  "If the Advisory Board determines a claim assessor has submitted a fraudulent vote, they have the power to burn the offending claim assessor's staked NXM.",
		},
		{
			Title: "Transparent process",
			Icon:  "/images/icons/transparent-process.svg",
			Text:  "Members discuss claims in a dedicated Discord channel ahead of voting. All claim outcomes can be viewed on-chain, in our user interface, and in our documentation.",
		},
	}

	Stories = []Story{
		{
			Logos: []Image{
				{Src: "/images/companies/rari-capital.png", Alt: "Rari Capital", Width: 120, Height: 60, Class: "h-12 w-auto"},
				{Src: "/images/companies/tribe-dao.png", Alt: "TribeDAO", Width: 80, Height: 80, Class: "h-16 w-16 rounded-full"},
			},
			Stats: []Stat{
				{Value: "$80M", Label: "Total lost in hack"},
				{Value: "$5M", Label: "Total claims paid"},
				{Value: "3 days", Label: "Average payout time"},
			},
			Title:       "TribeDAO, Rari Capital Fuse Market Hack",
			Date:        "30 April 2022",
			Description: "A flaw in the Rari Capital code led to an $80m loss. People who protected their crypto with Protocol Cover received payouts just days after filing.",
		},
		{
			Logos: []Image{
				{Src: "/images/companies/perpetual-protocol.svg", Alt: "Perpetual Protocol", Width: 120, Height: 60, Class: "h-12 w-auto"},
			},
			Stats: []Stat{
				{Value: "$6M+", Label: "Total lost in failure"},
				{Value: "$377K+", Label: "Total claims paid"},
				{},
			},
			Title:       "Perpetual Protocol v1 economic loss event",
			Date:        "May 2022",
			Description: "Extreme volatility caused major price deviations in Perpetual Protocol v1 markets and liquidation mechanisms failed, which created losses exceeding $5.7m due to economic design failure. Claims Assessors reviewed, approved, and paid all claims within days.",
		},
		{
			Logos: []Image{
				{Src: "/images/companies/cream-finance.svg", Alt: "CREAM Finance", Width: 120, Height: 60, Class: "h-12 w-auto"},
			},
			Stats: []Stat{
				{Value: "$130M+", Label: "Total lost in exploit"},
				{Value: "$397K+", Label: "Total claims paid"},
				{},
			},
			Title:       "CREAM V1 Economic Exploit",
			Date:        "27 October 2021",
			Description: "After CREAM Finance, a DeFi lending protocol, was hacked for $130m, Nexus Mutual members voted to approve and pay claims. Members who purchased CREAM Protocol Cover were made whole in a matter of days.",
		},
	}
)

// StoryCarousel cycles through Stories.
func StoryCarousel() Carousel {
	return Carousel{Len: len(Stories)}
}
