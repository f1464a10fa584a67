// Package shell implements a line-oriented command protocol for playing and
// editing fairy-chess positions. It owns the turn order, edit mode and
// promotion choice; the rules themselves live in package board.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/fairychess/internal/board"
	"github.com/hailam/fairychess/internal/storage"
)

// Store is the persistence the shell needs. *storage.Storage implements it.
type Store interface {
	SaveSnapshot(name, notation string) (string, error)
	LoadSnapshot(name string) (*storage.Snapshot, error)
	ListSnapshots() ([]storage.Snapshot, error)
	DeleteSnapshot(name string) error
	RecordResult(result storage.GameResult) error
	LoadStats() (*storage.GameStats, error)
	IsFirstLaunch() (bool, error)
	MarkFirstLaunchComplete() error
}

var (
	errEditMode     = errors.New("board is in edit mode")
	errNotEditing   = errors.New("not in edit mode (use edit)")
	errPending      = errors.New("promotion pending (use promote)")
	errNoStorage    = errors.New("storage unavailable")
	errGameOver     = errors.New("game is over (use new or position)")
	errUsage        = errors.New("usage")
	errUnknownColor = errors.New("unknown color")
)

// Shell reads commands and applies them to a board.
type Shell struct {
	board           *board.Board
	turn            board.Color
	editMode        bool
	gameOver        bool
	defaultPosition string

	// Bookkeeping for the statistics recorded when a game ends.
	plies   int
	started time.Time

	store Store
	out   io.Writer
	now   func() time.Time
}

// New creates a shell starting from defaultPosition. store may be nil, in
// which case save, load, list, delete and stats report an error.
func New(defaultPosition string, store Store) (*Shell, error) {
	b, err := board.Parse(defaultPosition)
	if err != nil {
		return nil, fmt.Errorf("default position: %w", err)
	}
	s := &Shell{
		defaultPosition: defaultPosition,
		store:           store,
		out:             io.Discard,
		now:             time.Now,
	}
	s.reset(b)
	return s, nil
}

// Board returns the current board.
func (s *Shell) Board() *board.Board { return s.board }

// Turn returns the side to move.
func (s *Shell) Turn() board.Color { return s.turn }

// EditMode reports whether the board is being edited.
func (s *Shell) EditMode() bool { return s.editMode }

// Run reads commands from r until EOF or quit, writing responses to w.
func (s *Shell) Run(r io.Reader, w io.Writer) error {
	s.out = w

	if s.store != nil {
		first, err := s.store.IsFirstLaunch()
		if err != nil {
			log.Printf("Warning: Failed to check first launch: %v", err)
		} else if first {
			s.handleHelp()
			if err := s.store.MarkFirstLaunchComplete(); err != nil {
				log.Printf("Warning: Failed to mark first launch complete: %v", err)
			}
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if s.Execute(scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

// Execute runs a single command line and reports whether it asked to quit.
func (s *Shell) Execute(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false
	}

	parts := strings.Fields(line)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "help":
		s.handleHelp()
	case "new":
		err = s.handleNew()
	case "position":
		err = s.handlePosition(args)
	case "show", "d":
		s.handleShow()
	case "export":
		fmt.Fprintln(s.out, s.board.String())
	case "pieces":
		s.handlePieces()
	case "moves":
		err = s.handleMoves(args)
	case "move":
		err = s.handleMove(args)
	case "promote":
		err = s.handlePromote(args)
	case "status":
		err = s.handleStatus(args)
	case "reach":
		err = s.handleReach(args)
	case "edit":
		err = s.handleEdit()
	case "add":
		err = s.handleAdd(args)
	case "remove":
		err = s.handleRemove(args)
	case "rows", "cols":
		err = s.handleResize(cmd, args)
	case "save":
		err = s.handleSave(args)
	case "load":
		err = s.handleLoad(args)
	case "list":
		err = s.handleList()
	case "delete":
		err = s.handleDelete(args)
	case "stats":
		err = s.handleStats()
	case "quit", "exit":
		return true
	default:
		err = fmt.Errorf("unknown command %q (try help)", cmd)
	}

	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
	}
	return false
}

// reset installs b as a fresh game with white to move.
func (s *Shell) reset(b *board.Board) {
	s.board = b
	s.turn = board.White
	s.editMode = false
	s.gameOver = false
	s.plies = 0
	s.started = s.now()
}

const helpText = `commands:
  new                      start again from the default position
  position <notation>      load a position, e.g. position 8 8 e1K e8k d4QN
  show                     print the board
  export                   print the position in notation
  pieces                   describe every piece
  moves <square>           list legal destinations of the piece on square
  move <from> <to>         play a move for the side to move
  promote <symbol>         choose the piece for a pending promotion
  status [white|black]     report check, checkmate or stalemate
  reach <square> <color>   can any piece of color move to square
  edit                     toggle edit mode
  add <token>              edit: place a piece, e.g. add c3GR or add f6n^
  remove <square>          edit: remove a piece
  rows <n|+k|-k>           edit: resize rows
  cols <n|+k|-k>           edit: resize columns
  save [name]              save the position
  load <name>              load a saved position
  list                     list saved positions
  delete <name>            delete a saved position
  stats                    show finished-game statistics
  quit                     exit`

func (s *Shell) handleHelp() {
	fmt.Fprintln(s.out, helpText)
}

func (s *Shell) handleNew() error {
	b, err := board.Parse(s.defaultPosition)
	if err != nil {
		return err
	}
	s.reset(b)
	fmt.Fprintln(s.out, "ok")
	return nil
}

func (s *Shell) handlePosition(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: position <rows> <cols> <tokens...>", errUsage)
	}
	b, err := board.Parse(strings.Join(args, " "))
	if err != nil {
		return err
	}
	s.reset(b)
	fmt.Fprintln(s.out, "ok")
	return nil
}

func (s *Shell) handleShow() {
	fmt.Fprint(s.out, s.board.Grid())
	switch {
	case s.editMode:
		fmt.Fprintln(s.out, "edit mode")
	case s.board.PendingPromotion():
		fmt.Fprintf(s.out, "%s to promote\n", s.turn)
	default:
		fmt.Fprintf(s.out, "%s to move\n", s.turn)
	}
	if p, from, ok := s.board.LastMove(); ok {
		fmt.Fprintf(s.out, "last move %s%s\n", s.board.SquareName(from), s.board.SquareName(p.Square()))
	}
}

func (s *Shell) handlePieces() {
	for _, p := range s.board.Pieces() {
		fmt.Fprintln(s.out, p.Describe(s.board.Rows()))
	}
}

func (s *Shell) handleMoves(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: moves <square>", errUsage)
	}
	from, err := s.board.ParseSquare(args[0])
	if err != nil {
		return err
	}
	if s.board.PieceAt(from) == nil {
		return fmt.Errorf("no piece on %s", args[0])
	}
	names := s.squareNames(s.board.LegalMoves(from))
	if len(names) == 0 {
		fmt.Fprintln(s.out, "(none)")
		return nil
	}
	fmt.Fprintln(s.out, strings.Join(names, " "))
	return nil
}

func (s *Shell) handleMove(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: move <from> <to>", errUsage)
	}
	switch {
	case s.editMode:
		return errEditMode
	case s.board.PendingPromotion():
		return errPending
	case s.gameOver:
		return errGameOver
	}

	from, err := s.board.ParseSquare(args[0])
	if err != nil {
		return err
	}
	to, err := s.board.ParseSquare(args[1])
	if err != nil {
		return err
	}
	p := s.board.PieceAt(from)
	if p == nil {
		return fmt.Errorf("no piece on %s", args[0])
	}
	if p.Color() != s.turn {
		return fmt.Errorf("it is %s's turn", s.turn)
	}
	if !s.board.Move(from, to) {
		return fmt.Errorf("illegal move %s %s", args[0], args[1])
	}

	if s.board.PendingPromotion() {
		fmt.Fprintf(s.out, "promote: choose one of %s\n", strings.Join(promotionSymbols(), " "))
		return nil
	}
	s.endTurn()
	return nil
}

func (s *Shell) handlePromote(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: promote <symbol>", errUsage)
	}
	if !s.board.PendingPromotion() {
		return board.ErrNoPromotion
	}
	k, ok := board.KindFromSymbol(args[0])
	if !ok {
		return fmt.Errorf("%w: %s", board.ErrUnknownSymbol, args[0])
	}
	if err := s.board.CommitPromotion(k); err != nil {
		return err
	}
	s.endTurn()
	return nil
}

// endTurn passes the move to the other side and reports the position it
// faces, recording the result if the game has ended.
func (s *Shell) endTurn() {
	s.turn = s.turn.Other()
	s.plies++

	status := s.board.Status(s.turn)
	switch status {
	case board.StatusCheckmate:
		fmt.Fprintf(s.out, "checkmate, %s wins\n", s.turn.Other())
		outcome := storage.OutcomeWhiteWins
		if s.turn == board.White {
			outcome = storage.OutcomeBlackWins
		}
		s.finish(outcome)
	case board.StatusStalemate:
		fmt.Fprintln(s.out, "stalemate")
		s.finish(storage.OutcomeStalemate)
	case board.StatusCheck:
		fmt.Fprintln(s.out, "check")
	default:
		fmt.Fprintln(s.out, "ok")
	}
}

func (s *Shell) finish(outcome storage.Outcome) {
	s.gameOver = true
	if s.store == nil {
		return
	}
	err := s.store.RecordResult(storage.GameResult{
		Outcome:  outcome,
		Rows:     s.board.Rows(),
		Cols:     s.board.Cols(),
		Plies:    s.plies,
		Duration: s.now().Sub(s.started),
	})
	if err != nil {
		log.Printf("Warning: Failed to record result: %v", err)
	}
}

func (s *Shell) handleStatus(args []string) error {
	side := s.turn
	if len(args) > 0 {
		c, ok := board.ParseColor(args[0])
		if !ok {
			return fmt.Errorf("%w: %s", errUnknownColor, args[0])
		}
		side = c
	}
	fmt.Fprintln(s.out, s.board.Status(side))
	return nil
}

func (s *Shell) handleReach(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: reach <square> <white|black>", errUsage)
	}
	sq, err := s.board.ParseSquare(args[0])
	if err != nil {
		return err
	}
	c, ok := board.ParseColor(args[1])
	if !ok {
		return fmt.Errorf("%w: %s", errUnknownColor, args[1])
	}
	if s.board.SideCanMoveTo(sq, c, true) {
		fmt.Fprintln(s.out, "yes")
	} else {
		fmt.Fprintln(s.out, "no")
	}
	return nil
}

func (s *Shell) handleEdit() error {
	if s.board.PendingPromotion() {
		return errPending
	}
	s.editMode = !s.editMode
	s.turn = board.White
	s.gameOver = false
	if s.editMode {
		fmt.Fprintln(s.out, "edit mode on")
	} else {
		fmt.Fprintln(s.out, "edit mode off")
	}
	return nil
}

func (s *Shell) handleAdd(args []string) error {
	if !s.editMode {
		return errNotEditing
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: add <token>", errUsage)
	}
	p, err := board.ParsePiece(args[0], s.board.Rows(), s.board.Cols())
	if err != nil {
		return err
	}
	if !s.board.AddPiece(p) {
		return fmt.Errorf("%w: %s", board.ErrOccupiedSquare, args[0])
	}
	fmt.Fprintln(s.out, "ok")
	return nil
}

func (s *Shell) handleRemove(args []string) error {
	if !s.editMode {
		return errNotEditing
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: remove <square>", errUsage)
	}
	sq, err := s.board.ParseSquare(args[0])
	if err != nil {
		return err
	}
	if s.board.RemoveAt(sq) == nil {
		return fmt.Errorf("no piece on %s", args[0])
	}
	fmt.Fprintln(s.out, "ok")
	return nil
}

func (s *Shell) handleResize(cmd string, args []string) error {
	if !s.editMode {
		return errNotEditing
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: %s <n|+k|-k>", errUsage, cmd)
	}
	current := s.board.Rows()
	if cmd == "cols" {
		current = s.board.Cols()
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: %s", board.ErrInvalidDimensions, args[0])
	}
	if strings.HasPrefix(args[0], "+") || strings.HasPrefix(args[0], "-") {
		n += current
	}

	var ok bool
	if cmd == "cols" {
		ok = s.board.SetCols(n)
	} else {
		ok = s.board.SetRows(n)
	}
	if !ok {
		return fmt.Errorf("%w: %d", board.ErrInvalidDimensions, n)
	}
	fmt.Fprintf(s.out, "%d %d\n", s.board.Rows(), s.board.Cols())
	return nil
}

func (s *Shell) handleSave(args []string) error {
	if s.store == nil {
		return errNoStorage
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: save [name]", errUsage)
	}
	var name string
	if len(args) == 1 {
		name = args[0]
	}
	name, err := s.store.SaveSnapshot(name, s.board.String())
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "saved %s\n", name)
	return nil
}

func (s *Shell) handleLoad(args []string) error {
	if s.store == nil {
		return errNoStorage
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: load <name>", errUsage)
	}
	snap, err := s.store.LoadSnapshot(args[0])
	if err != nil {
		return err
	}
	b, err := board.Parse(snap.Notation)
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", args[0], err)
	}
	s.reset(b)
	fmt.Fprintln(s.out, "ok")
	return nil
}

func (s *Shell) handleList() error {
	if s.store == nil {
		return errNoStorage
	}
	snaps, err := s.store.ListSnapshots()
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Fprintln(s.out, "(none)")
		return nil
	}
	for _, snap := range snaps {
		fmt.Fprintf(s.out, "%s\t%s\n", snap.Name, snap.SavedAt.Format(time.DateTime))
	}
	return nil
}

func (s *Shell) handleDelete(args []string) error {
	if s.store == nil {
		return errNoStorage
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: delete <name>", errUsage)
	}
	if err := s.store.DeleteSnapshot(args[0]); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "ok")
	return nil
}

func (s *Shell) handleStats() error {
	if s.store == nil {
		return errNoStorage
	}
	stats, err := s.store.LoadStats()
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "games %d\n", stats.GamesPlayed)
	fmt.Fprintf(s.out, "white wins %d\n", stats.WhiteWins)
	fmt.Fprintf(s.out, "black wins %d\n", stats.BlackWins)
	fmt.Fprintf(s.out, "stalemates %d\n", stats.Stalemates)
	fmt.Fprintf(s.out, "average length %.1f plies\n", stats.AveragePlies())
	return nil
}

func (s *Shell) squareNames(squares []board.Square) []string {
	names := make([]string, len(squares))
	for i, sq := range squares {
		names[i] = s.board.SquareName(sq)
	}
	return names
}

func promotionSymbols() []string {
	kinds := board.PromotionKinds()
	symbols := make([]string, len(kinds))
	for i, k := range kinds {
		symbols[i] = k.Symbol()
	}
	return symbols
}
