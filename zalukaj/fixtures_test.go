package zalukaj

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"

	"github.com/zalukaj-cli/zalukaj/filesystem"
	"github.com/zalukaj-cli/zalukaj/where"
)

const homePage = `<html><head><title>Zalukaj</title></head><body>
<form><input type="hidden" name="hash" value="csrf-token"></form>
<div id="two"><table id="main_menu"><tr><td>
<a href="/kategoria-serialu/1/Breaking_Bad/" title="Breaking Bad">Breaking Bad</a>
<a href="/kategoria-serialu/2/Dark/" title="Dark">Dark</a>
</td></tr></table></div>
<table id="one"><tr>
<td><a href="/gatunek,2/">Akcja</a></td>
<td><a href="/gatunek,5/"> Komedia </a></td>
</tr></table>
</body></html>`

const userPage = `<html><body>
<div><a href="#" style="text-decoration:underline;">janek</a></div>
<div><p>Witaj</p></div>
<div><p>Konto: <a href="/vip">Konto VIP</a></p><p><a href="/other">inne</a></p></div>
</body></html>`

const freeUserPage = `<html><body>
<div><a href="#" style="text-decoration:underline;">ola</a></div>
<div><p>Witaj</p></div>
<div><p><a href="/vip">Darmowe konto - zarejestruj VIP</a></p></div>
</body></html>`

const seasonsPage = `<html><body>
<div class="blok2"><div><img src="/images/series/bb.jpg"></div></div>
<div id="sezony">
<a class="sezon" href="/kategoria-serialu/1/sezon-1/">Sezon: 1</a>
<a class="sezon" href="/kategoria-serialu/1/sezon-12/">Sezon: 12</a>
<a class="sezon" href="/kategoria-serialu/1/specjalne/">Odcinki specjalne</a>
</div></body></html>`

const episodesPage = `<html><body>
<div class="blok2"><div><img src="/images/series/bb.jpg"></div></div>
<div class="odcinkicat">
<div><a href="/serial/bb-s01e01.html">Pilot</a><span class="vinfo">s01e01</span></div>
<div><a href="/serial/bb-s01e02.html">Cat's in the Bag</a><span class="vinfo">S01E02</span></div>
<div><a href="/serial/bb-bonus.html">Bonus</a><span class="vinfo">dodatek</span></div>
</div></body></html>`

const moviesPage = `<html><body>
<div class="categories_page">
<a href="/gatunek,2/1/">1</a><span class="pc_current">2</span><a href="/gatunek,2/3/">3</a><a href="/gatunek,2/4/">4</a><a href="/gatunek,2/3/">Dalej</a>
</div>
<div id="index_content">
<div class="tivief4">
<div class="im23jf" style="background-image:url(/images/movies/heat.jpg);"><p><span>1995</span></p></div>
<div class="rmk23m4"><h3><a href="/zobacz-film/1/heat.html" title="Gorączka">Gorączka</a></h3><div> Napad na bank. </div></div>
</div>
<div class="tivief4">
<div class="im23jf" style="background-image:url(https://cdn.example.com/ronin.jpg);"><p><span>brak</span></p></div>
<div class="rmk23m4"><h3><a href="/zobacz-film/2/ronin.html" title="Ronin">Ronin</a></h3></div>
</div>
</div></body></html>`

const firstMoviesPage = `<html><body>
<div class="categories_page"><span class="pc_current">1</span><a href="/gatunek,5/2/">2</a></div>
<div id="index_content"></div>
</body></html>`

const searchPage = `<div class="row">
<div class="thumb"><img src="https://cdn.example.com/heat.jpg"></div>
<div class="details"><div class="title"><a href="/zobacz-film/1/heat.html" title="Gorączka">Gorączka</a></div><div class="gen">1995 | Akcja</div></div>
<div class="desc">Napad na bank.</div>
</div>
<div class="row">
<div class="details"><div class="title"><a href="https://zalukaj.com/kategoria-serialu/1/Breaking_Bad/" title="Breaking Bad">Breaking Bad</a></div><div class="gen">serial</div></div>
</div>
<div class="row">
<div class="details"><div class="title"><a href="/serial/dark-s01e01.html" title="Dark">Dark</a></div><div class="gen">2017 | Serial</div></div>
</div>
<div class="row"><div class="details">no title here</div></div>`

const titlePage = `<html><body><iframe src="/player.php?w=1"></iframe></body></html>`

const freeTitlePage = `<html><body><iframe src="/player.php?w=2"></iframe></body></html>`

const playerPage = `<html><body>
<div id="buttonsPL"><a href="/player.php?w=1&v=lektor">Lektor</a><a href="/player.php?w=1&v=napisy">Napisy</a></div>
<video>
<source label="480p" src="https://stream.example.com/heat-480.mp4">
<source label="720p" src="https://stream.example.com/heat-720.mp4">
<source src="https://stream.example.com/unlabelled.mp4">
</video></body></html>`

const freePlayerPage = `<html><body><p>Tylko dla VIP</p></body></html>`

const overloadPage = `<html><head><title>503</title></head><body><h1>Duze obciazenie!</h1></body></html>`

const blockedPage = `<html><head><title>Wykryto podejrzaną aktywność</title></head><body></body></html>`

// newSiteServer serves fixture pages imitating the site.
func newSiteServer() *httptest.Server {
	mux := http.NewServeMux()

	write := func(w http.ResponseWriter, status int, body string) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			write(w, http.StatusNotFound, "<html><title>404</title></html>")
			return
		}
		write(w, http.StatusOK, homePage)
	})
	mux.HandleFunc("/ajax/login", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.Method != http.MethodPost ||
			r.Header.Get("X-Requested-With") != "XMLHttpRequest" ||
			r.PostForm.Get("hash") != "csrf-token" {
			write(w, http.StatusBadRequest, "bad request")
			return
		}

		switch r.PostForm.Get("password") {
		case "secret":
			http.SetCookie(w, &http.Cookie{Name: "PHPSESSID", Value: r.PostForm.Get("username"), Path: "/"})
			write(w, http.StatusOK, "Zalogowano!")
		case "nosession":
			write(w, http.StatusOK, "Zalogowano!")
		default:
			write(w, http.StatusOK, "Błędny login lub hasło")
		}
	})
	mux.HandleFunc("/libs/ajax/login.php", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("PHPSESSID")
		switch {
		case err != nil:
			write(w, http.StatusOK, "<html><body><form></form></body></html>")
		case cookie.Value == "ola":
			write(w, http.StatusOK, freeUserPage)
		default:
			write(w, http.StatusOK, userPage)
		}
	})
	mux.HandleFunc("/kategoria-serialu/1/Breaking_Bad/", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, seasonsPage)
	})
	mux.HandleFunc("/kategoria-serialu/1/sezon-1/", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, episodesPage)
	})
	mux.HandleFunc("/gatunek,2/2/", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, moviesPage)
	})
	mux.HandleFunc("/gatunek,5/", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, firstMoviesPage)
	})
	mux.HandleFunc("/v2/ajax/load.search", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("html") != "1" || r.URL.Query().Get("q") == "" {
			write(w, http.StatusBadRequest, "")
			return
		}
		write(w, http.StatusOK, searchPage)
	})
	mux.HandleFunc("/zobacz-film/1/heat.html", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, titlePage)
	})
	mux.HandleFunc("/zobacz-film/3/free.html", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, freeTitlePage)
	})
	mux.HandleFunc("/zobacz-film/4/broken.html", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, "<html><body>brak</body></html>")
	})
	mux.HandleFunc("/player.php", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("w") == "1" && r.URL.Query().Get("x") == "1" {
			write(w, http.StatusOK, playerPage)
			return
		}
		write(w, http.StatusOK, freePlayerPage)
	})
	mux.HandleFunc("/stary-serial/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/kategoria-serialu/1/Breaking_Bad/", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/busy", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusServiceUnavailable, overloadPage)
	})
	mux.HandleFunc("/blocked", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusServiceUnavailable, blockedPage)
	})

	return httptest.NewServer(mux)
}

// newTestClient returns a client for server backed by a fresh in-memory filesystem.
func newTestClient(server *httptest.Server) *Client {
	filesystem.SetMemMapFs()
	client, err := New(Options{
		BaseURL:     server.URL,
		CookiesPath: filepath.Join(where.Data(), CookiesFileName),
	})
	if err != nil {
		panic(err)
	}
	return client
}
