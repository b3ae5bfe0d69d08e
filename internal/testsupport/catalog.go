package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleCatalogCSV is a small catalog in the IMDB top-1000 layout. Apollo 13
// carries a certificate in its year column and the last row has an
// unparseable runtime.
const SampleCatalogCSV = `Poster_Link,Series_Title,Released_Year,Certificate,Runtime,Genre,IMDB_Rating,Overview,Meta_score,Director,Star1,Star2,Star3,Star4,No_of_Votes,Gross
https://img.example/shawshank.jpg,The Shawshank Redemption,1994,A,142 min,Drama,9.3,Two imprisoned men bond over a number of years finding solace and eventual redemption through acts of common decency.,80,Frank Darabont,Tim Robbins,Morgan Freeman,Bob Gunton,William Sadler,2343110,"28,341,469"
https://img.example/darkknight.jpg,The Dark Knight,2008,UA,152 min,"Action, Crime, Drama",9.0,When the menace known as the Joker wreaks havoc and chaos on the people of Gotham Batman must accept one of the greatest tests.,84,Christopher Nolan,Christian Bale,Heath Ledger,Aaron Eckhart,Michael Caine,2303232,"534,858,444"
https://img.example/inception.jpg,Inception,2010,UA,148 min,"Action, Adventure, Sci-Fi",8.8,A thief who steals corporate secrets through the use of dream-sharing technology is given the inverse task of planting an idea into the mind of a C.E.O.,74,Christopher Nolan,Leonardo DiCaprio,Joseph Gordon-Levitt,Elliot Page,Ken Watanabe,2067042,"292,576,195"
https://img.example/interstellar.jpg,Interstellar,2014,UA,169 min,"Adventure, Drama, Sci-Fi",8.6,A team of explorers travel through a wormhole in space in an attempt to ensure humanity's survival.,74,Christopher Nolan,Matthew McConaughey,Anne Hathaway,Jessica Chastain,Mackenzie Foy,1512360,"188,020,017"
https://img.example/up.jpg,Up,2009,U,96 min,"Animation, Adventure, Comedy",8.3,78-year-old Carl Fredricksen travels to Paradise Falls in his house equipped with balloons inadvertently taking a young stowaway.,88,Pete Docter,Bob Peterson,Edward Asner,Jordan Nagai,John Ratzenberger,935507,"293,004,164"
https://img.example/toystory.jpg,Toy Story,1995,U,81 min,"Animation, Adventure, Comedy",8.3,A cowboy doll is profoundly threatened and jealous when a new spaceman figure supplants him as top toy in a boy's room.,95,John Lasseter,Tom Hanks,Tim Allen,Don Rickles,Jim Varney,887429,"191,796,233"
https://img.example/amelie.jpg,Amélie,2001,R,122 min,"Comedy, Romance",8.3,Despite being caught in her imaginative world Amélie a young waitress decides to help people find happiness.,69,Jean-Pierre Jeunet,Audrey Tautou,Mathieu Kassovitz,Rufus,Lorella Cravotta,703810,"33,225,499"
https://img.example/apollo13.jpg,Apollo 13,PG,U,140 min,"Adventure, Drama, History",7.6,NASA must devise a strategy to return Apollo 13 to Earth safely after the spacecraft undergoes massive internal damage.,77,Ron Howard,Tom Hanks,Bill Paxton,Kevin Bacon,Gary Sinise,269197,"173,837,933"
https://img.example/broken.jpg,Broken Reel,1999,U,unknown,Drama,7.0,A film with no recorded runtime.,50,Nobody,A,B,C,D,100,"1"
`

// SampleCatalogMovies is the number of loadable movies in SampleCatalogCSV.
const SampleCatalogMovies = 8

// WriteCatalog writes csv to dir/catalog.csv and returns the path.
func WriteCatalog(t testing.TB, dir, csv string) string {
	t.Helper()

	path := filepath.Join(dir, "catalog.csv")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
