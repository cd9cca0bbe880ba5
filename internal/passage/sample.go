package passage

// SampleText is a short built-in passage for practicing without a model.
const SampleText = "Minneapolis is a city in Minnesota.\n\n" +
	"It is next to St. Paul, Minnesota.\n\n" +
	"St. Paul and Minneapolis are called the Twin Cities because they are right next to each other."
