package services

// Author commentary printed beside the charts. The text describes the
// 2000-2015 cohort data and is not derived from it.

const educationHealthCommentary = `Educational graph illustrates the significant strides made by
China in education between 2000 and 2015, underscoring a
strategic emphasis on educational reform and investment.
Other nations, such as Canada and Australia, also exhibit
upward trends showcasing the global prioritization of
educational improvement.

The Health graph for Australia, Canada, Germany sustain high
index, portrays positive trajectory in health outcomes, reflecting
comprehensive healthcare reforms and public health initiatives.
While others countries climb steadily. Notable progress also
seen in China and Poland.`

const growthShareCommentary = `The pie chart provides a visual representation of the comparative
GDP growth percentages among the selection of countries. It
delineates the proportionate contribution of each country to the
aggregate growth measured. China commands the majority with
61.3% of the growth, depicted in a prominent green sector.

Germany's economy is represented by a 14.5% share, marked in
purple, indicating the second-largest contribution. The orange
segment, accounting for 12.1%, corresponds to Canada. Singapore
and Australia are represented by smaller wedges, in blue and red,
constituting 5.5% and 4.5% of the growth, respectively.`

const exportsCommentary = `The chart tracks China's remarkable growth in exports,
showing its development into a leading global exporter,
a change likely fueled by significant advancements in
manufacturing and technology.

Germany's consistent export figures, paired with its strong
health sector, suggest a stable and prosperous economy.
Australia's graph demonstrates a spirited and variable
export market, pointing to an economy that is adaptive
and responsive to the global trade environment. Overall,
this visualization presents a straightforward view of each
country's export trends, highlighting their individual
economic strengths and positions within the global market.`

const gdpGrowthCommentary = `A comprehensive analysis of global GDP growth patterns
unveils the sweeping dimensions of China's economic
resurgence, marked by some years that have registered
breathtaking growth rates. These remarkable peaks in
China's GDP growth signify extraordinary episodes of
economic expansion that have significantly shaped the
global economic landscape. Germany, renowned for its
economic stability punctuated by occasional spurts of
growth. Its capacity to maintain a sturdy economic found-
ation while also experiencing intermittent bursts of
expansion underscores its vital role in bolstering global
economic dynamics.

Furthermore, Australia and Canada, with their consistent
growth trajectories, contribute their threads to this rich
fabric of global economic vitality. Meanwhile, Singapore's
strategic economic management adding to overall complexity
of global economic development.`

// commentaryBlock is a text tile of the dashboard grid.
type commentaryBlock struct {
	row, col int
	text     string
	fontSize float64
}

var dashboardCommentary = []commentaryBlock{
	{row: 0, col: 1, text: educationHealthCommentary, fontSize: 14},
	{row: 1, col: 0, text: growthShareCommentary, fontSize: 14},
	{row: 1, col: 2, text: gdpGrowthCommentary, fontSize: 15},
	{row: 2, col: 1, text: exportsCommentary, fontSize: 15},
}
